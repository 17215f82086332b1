package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ReservationRepo defines the persistence operations for the "reservations" collection.
// Reservations are write-once, so there is no Update or Delete.
type ReservationRepo interface {
	// Create inserts a reservation and returns its store-generated id.
	Create(ctx context.Context, r domain.Reservation) (uuid.UUID, error)

	// List returns every reservation across all users.
	List(ctx context.Context) ([]domain.Reservation, error)

	// ListByUser returns the reservations created by userID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error)
}

type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db connection.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

func (r *pgReservationRepo) Create(ctx context.Context, res domain.Reservation) (uuid.UUID, error) {
	const q = `
		INSERT INTO reservations (destination, date, type, user_id)
		VALUES (@destination, @date, @type, @user_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"destination": res.Destination,
		"date":        res.Date,
		"type":        res.Type,
		"user_id":     res.UserID,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return uuid.Nil, writeErr("repo.ReservationRepo.Create", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *pgReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	const q = `
		SELECT id, destination, date, type, user_id, created_at
		FROM reservations
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, readErr("repo.ReservationRepo.List", err)
	}
	out, err := collect(rows, scanReservation)
	if err != nil {
		return nil, readErr("repo.ReservationRepo.List", err)
	}
	return out, nil
}

func (r *pgReservationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error) {
	const q = `
		SELECT id, destination, date, type, user_id, created_at
		FROM reservations
		WHERE user_id = @user_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, readErr("repo.ReservationRepo.ListByUser", err)
	}
	out, err := collect(rows, scanReservation)
	if err != nil {
		return nil, readErr("repo.ReservationRepo.ListByUser", err)
	}
	return out, nil
}

func scanReservation(s scanner) (domain.Reservation, error) {
	var (
		res    domain.Reservation
		id     pgtype.UUID
		userID pgtype.UUID
	)
	err := s.Scan(&id, &res.Destination, &res.Date, &res.Type, &userID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, err
	}
	res.ID = uuid.UUID(id.Bytes)
	res.UserID = uuid.UUID(userID.Bytes)
	return res, nil
}
