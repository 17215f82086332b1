package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
)

// DestinationRepo defines the persistence operations for the "destinations" collection.
// The service layer depends on this interface, not the Postgres implementation.
type DestinationRepo interface {
	// Create inserts a destination and returns its store-generated id.
	// created_at is stamped by the database.
	Create(ctx context.Context, d domain.Destination) (uuid.UUID, error)

	// GetByID retrieves a single destination.
	// Returns domain.ErrNotFound if no destination with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns every destination. Ordering is not part of the contract.
	List(ctx context.Context) ([]domain.Destination, error)

	// Update overwrites every editable field of an existing destination.
	// id and created_at are never touched.
	// Returns domain.ErrNotFound if no destination with that id exists.
	Update(ctx context.Context, id uuid.UUID, d domain.Destination) error

	// Delete removes a destination. A second delete of the same id returns
	// domain.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (uuid.UUID, error) {
	const q = `
		INSERT INTO destinations (name, description, category, latitude, longitude, image_url)
		VALUES (@name, @description, @category, @latitude, @longitude, @image_url)
		RETURNING id`

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, destinationArgs(d)).Scan(&id); err != nil {
		return uuid.Nil, writeErr("repo.DestinationRepo.Create", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT id, name, description, category, latitude, longitude, image_url, created_at
		FROM destinations
		WHERE id = @id`

	d, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, readErr("repo.DestinationRepo.GetByID", err)
	}
	return d, nil
}

func (r *pgDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT id, name, description, category, latitude, longitude, image_url, created_at
		FROM destinations
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, readErr("repo.DestinationRepo.List", err)
	}
	out, err := collect(rows, scanDestination)
	if err != nil {
		return nil, readErr("repo.DestinationRepo.List", err)
	}
	return out, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, id uuid.UUID, d domain.Destination) error {
	const q = `
		UPDATE destinations
		SET name        = @name,
		    description = @description,
		    category    = @category,
		    latitude    = @latitude,
		    longitude   = @longitude,
		    image_url   = @image_url
		WHERE id = @id`

	args := destinationArgs(d)
	args["id"] = id

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return writeErr("repo.DestinationRepo.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return writeErr("repo.DestinationRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// destinationArgs maps the editable fields. An empty image URL is stored as NULL
// so "no photo" has a single representation.
func destinationArgs(d domain.Destination) pgx.NamedArgs {
	var imageURL *string
	if d.ImageURL != "" {
		imageURL = &d.ImageURL
	}
	return pgx.NamedArgs{
		"name":        d.Name,
		"description": d.Description,
		"category":    d.Category,
		"latitude":    d.Location.Latitude,
		"longitude":   d.Location.Longitude,
		"image_url":   imageURL,
	}
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d        domain.Destination
		id       pgtype.UUID
		imageURL pgtype.Text
	)
	err := s.Scan(&id, &d.Name, &d.Description, &d.Category,
		&d.Location.Latitude, &d.Location.Longitude, &imageURL, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	if imageURL.Valid {
		d.ImageURL = imageURL.String
	}
	return d, nil
}
