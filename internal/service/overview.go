package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Overview is what the reservation form needs: the destinations to choose
// from and the caller's existing reservations.
type Overview struct {
	Destinations []domain.Destination
	Reservations []domain.Reservation
}

// OverviewService loads an Overview with both reads in flight at once.
type OverviewService struct {
	destinations *DestinationService
	reservations *ReservationService
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(d *DestinationService, r *ReservationService) *OverviewService {
	return &OverviewService{destinations: d, reservations: r}
}

// Load fetches destinations and owner's reservations concurrently.
// If either read fails the other is cancelled and the first error returned.
func (s *OverviewService) Load(ctx context.Context, owner domain.Identity) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ds, err := s.destinations.List(gctx)
		if err != nil {
			return err
		}
		out.Destinations = ds
		return nil
	})
	g.Go(func() error {
		rs, err := s.reservations.ListMine(gctx, owner)
		if err != nil {
			return err
		}
		out.Reservations = rs
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("service.OverviewService.Load: %w", err)
	}
	return out, nil
}
