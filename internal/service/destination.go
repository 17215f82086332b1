// Package service contains the business logic for the travel planner API.
// Services validate drafts, enforce ownership rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/geo"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/validate"
)

// DestinationService implements the destination screen's actions.
type DestinationService struct {
	repo repo.DestinationRepo
	log  *slog.Logger
}

// NewDestinationService constructs a DestinationService backed by r.
func NewDestinationService(r repo.DestinationRepo, log *slog.Logger) *DestinationService {
	return &DestinationService{repo: r, log: log}
}

// Create validates the draft and persists it. An invalid draft never reaches
// the repository. The draft's ImageURL must already be resolved by an upload.
func (s *DestinationService) Create(ctx context.Context, draft domain.DestinationDraft) (uuid.UUID, error) {
	d, err := validate.Destination(draft)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := s.repo.Create(ctx, d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return id, nil
}

// List returns every destination.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	ds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if ds == nil {
		return []domain.Destination{}, nil
	}
	return ds, nil
}

// Refresh reloads the collection after a mutation. A failed read is logged
// and shown as an empty list; the mutation itself already succeeded.
func (s *DestinationService) Refresh(ctx context.Context) []domain.Destination {
	ds, err := s.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "refresh destinations", "error", err)
		return []domain.Destination{}
	}
	return ds
}

// Update validates the draft and replaces the editable fields of id.
// Returns domain.ErrNotFound if id does not exist.
func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, draft domain.DestinationDraft) error {
	d, err := validate.Destination(draft)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, d); err != nil {
		return fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return nil
}

// Delete removes id. Deleting the same id twice reports domain.ErrNotFound.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// Nearby returns the destinations within radiusKm of (lat, lon), nearest first.
// The index is rebuilt from the current collection on every call.
func (s *DestinationService) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]geo.Hit, error) {
	ds, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Nearby: %w", err)
	}
	hits, err := geo.NewIndex(ds).Within(lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Nearby: %w", err)
	}
	return hits, nil
}
