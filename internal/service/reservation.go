package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/validate"
)

// ReservationService implements the reservation screen's actions.
// Reservations are write-once, so there is no Update or Delete.
type ReservationService struct {
	repo repo.ReservationRepo
	log  *slog.Logger
}

// NewReservationService constructs a ReservationService backed by r.
func NewReservationService(r repo.ReservationRepo, log *slog.Logger) *ReservationService {
	return &ReservationService{repo: r, log: log}
}

// Create validates the draft and persists it on behalf of owner.
// Returns domain.ErrUnauthenticated if owner is anonymous.
func (s *ReservationService) Create(ctx context.Context, owner domain.Identity, draft domain.ReservationDraft) (uuid.UUID, error) {
	r, err := validate.Reservation(draft)
	if err != nil {
		return uuid.Nil, err
	}
	if !owner.Authenticated() {
		return uuid.Nil, fmt.Errorf("service.ReservationService.Create: %w", domain.ErrUnauthenticated)
	}
	r.UserID = owner.UserID

	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.ReservationService.Create: %w", err)
	}
	return id, nil
}

// ListMine returns the reservations created by owner.
func (s *ReservationService) ListMine(ctx context.Context, owner domain.Identity) ([]domain.Reservation, error) {
	if !owner.Authenticated() {
		return nil, fmt.Errorf("service.ReservationService.ListMine: %w", domain.ErrUnauthenticated)
	}
	rs, err := s.repo.ListByUser(ctx, owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListMine: %w", err)
	}
	if rs == nil {
		return []domain.Reservation{}, nil
	}
	return rs, nil
}

// List returns every reservation across all users.
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	rs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.List: %w", err)
	}
	if rs == nil {
		return []domain.Reservation{}, nil
	}
	return rs, nil
}

// Refresh reloads owner's reservations after a create, logging and
// returning an empty list if the read fails.
func (s *ReservationService) Refresh(ctx context.Context, owner domain.Identity) []domain.Reservation {
	rs, err := s.ListMine(ctx, owner)
	if err != nil {
		s.log.ErrorContext(ctx, "refresh reservations", "error", err, "user_id", owner.UserID)
		return []domain.Reservation{}
	}
	return rs
}
