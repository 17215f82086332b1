package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.destinations.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationsJSON{Destinations: destinationsToResponse(ds)})
}

// NearbyDestinations handles GET /destinations/nearby?lat=&lon=&radius_km=.
func (s *Server) NearbyDestinations(w http.ResponseWriter, r *http.Request) {
	var lat, lon, radius float64
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"lat", &lat}, {"lon", &lon}, {"radius_km", &radius}} {
		if strings.TrimSpace(q.Get(p.name)) == "" {
			writeError(w, http.StatusUnprocessableEntity, "missing_field", p.name+" is required")
			return
		}
		if err := runtime.BindQueryParameter("form", true, true, p.name, q, p.dst); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "not_numeric", p.name+" must be a number")
			return
		}
	}

	hits, err := s.destinations.Nearby(r.Context(), lat, lon, radius)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": hitsToResponse(hits)})
}

// CreateDestination handles POST /destinations.
// Responds 201 with the new id and the refreshed collection.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidBody(w, err.Error())
		return
	}

	id, err := s.destinations.Create(r.Context(), req.draft())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationsJSON{
		ID:           &id,
		Destinations: destinationsToResponse(s.destinations.Refresh(r.Context())),
	})
}

// UpdateDestination handles PUT /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidBody(w, err.Error())
		return
	}

	if err := s.destinations.Update(r.Context(), id, req.draft()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationsJSON{
		ID:           &id,
		Destinations: destinationsToResponse(s.destinations.Refresh(r.Context())),
	})
}

// DeleteDestination handles DELETE /destinations/{id}.
// A second delete of the same id is 404.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.destinations.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationsJSON{
		ID:           &id,
		Destinations: destinationsToResponse(s.destinations.Refresh(r.Context())),
	})
}

// pathID binds the {id} path parameter. A malformed id cannot name an
// existing record, so it is answered as 404.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.fail(w, r, domain.ErrNotFound)
		return openapi_types.UUID{}, false
	}
	return id, true
}
