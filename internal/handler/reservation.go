package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/middleware"
)

// ListReservations handles GET /reservations: the caller's own reservations.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := s.reservations.ListMine(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationsJSON{Reservations: reservationsToResponse(rs)})
}

// CreateReservation handles POST /reservations. The owner is always the
// authenticated caller; the body cannot name another user.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidBody(w, err.Error())
		return
	}

	owner := middleware.IdentityFrom(r.Context())
	id, err := s.reservations.Create(r.Context(), owner, req.draft())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservationsJSON{
		ID:           &id,
		Reservations: reservationsToResponse(s.reservations.Refresh(r.Context(), owner)),
	})
}

// GetOverview handles GET /overview.
func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.overview.Load(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overviewJSON{
		Destinations: destinationsToResponse(ov.Destinations),
		Reservations: reservationsToResponse(ov.Reservations),
	})
}
