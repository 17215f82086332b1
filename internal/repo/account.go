package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// AccountRepo stores the identity provider's credentials.
// Emails are compared case-insensitively.
type AccountRepo interface {
	// Create inserts an account and returns it with its generated id.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, email, passwordHash string) (domain.Account, error)

	// GetByEmail returns the account for email.
	// Returns domain.ErrNotFound if no account uses that email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// Delete removes the account and, through the foreign key, its profile.
	// Returns domain.ErrNotFound if no account has that id.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgAccountRepo struct {
	db db
}

// NewAccountRepo constructs an AccountRepo backed by the provided db connection.
func NewAccountRepo(db db) AccountRepo {
	return &pgAccountRepo{db: db}
}

func (r *pgAccountRepo) Create(ctx context.Context, email, passwordHash string) (domain.Account, error) {
	const q = `
		INSERT INTO accounts (email, password_hash)
		VALUES (@email, @password_hash)
		RETURNING id, email, password_hash, created_at`

	args := pgx.NamedArgs{
		"email":         strings.ToLower(email),
		"password_hash": passwordHash,
	}

	a, err := scanAccount(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Account{}, fmt.Errorf("repo.AccountRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Account{}, writeErr("repo.AccountRepo.Create", err)
	}
	return a, nil
}

func (r *pgAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	const q = `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = @email`

	a, err := scanAccount(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": strings.ToLower(email)}))
	if err != nil {
		return domain.Account{}, readErr("repo.AccountRepo.GetByEmail", err)
	}
	return a, nil
}

func (r *pgAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM accounts WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return writeErr("repo.AccountRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AccountRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanAccount(s scanner) (domain.Account, error) {
	var (
		a  domain.Account
		id pgtype.UUID
	)
	if err := s.Scan(&id, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
