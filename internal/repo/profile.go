package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ProfileRepo stores the "users" collection: one profile per identity,
// keyed by the identity's id.
type ProfileRepo interface {
	// Create writes the profile for p.ID and returns it with created_at set.
	Create(ctx context.Context, p domain.Profile) (domain.Profile, error)

	// GetByID returns the profile for an identity.
	// Returns domain.ErrNotFound if none was written.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Profile, error)
}

type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

func (r *pgProfileRepo) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO users (id, name, surname, email)
		VALUES (@id, @name, @surname, @email)
		RETURNING id, name, surname, email, created_at`

	args := pgx.NamedArgs{
		"id":      p.ID,
		"name":    p.Name,
		"surname": p.Surname,
		"email":   p.Email,
	}

	out, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Profile{}, writeErr("repo.ProfileRepo.Create", err)
	}
	return out, nil
}

func (r *pgProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	const q = `
		SELECT id, name, surname, email, created_at
		FROM users
		WHERE id = @id`

	out, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Profile{}, readErr("repo.ProfileRepo.GetByID", err)
	}
	return out, nil
}

func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p  domain.Profile
		id pgtype.UUID
	)
	if err := s.Scan(&id, &p.Name, &p.Surname, &p.Email, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
