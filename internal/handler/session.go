package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/middleware"
)

// Register handles POST /auth/register. Responds 201 with a session.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidBody(w, err.Error())
		return
	}

	sess, err := s.sessions.Register(r.Context(), domain.Registration{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidBody(w, err.Error())
		return
	}

	sess, err := s.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// Logout handles POST /auth/logout. Always 204, with or without a session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.SignOut(r.Context(), middleware.TokenFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /session: the current identity and its profile.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if !id.Authenticated() {
		writeJSON(w, http.StatusOK, currentSessionJSON{})
		return
	}

	resp := currentSessionJSON{
		Authenticated: true,
		User:          &userJSON{ID: id.UserID, Email: id.Email},
	}
	p, err := s.sessions.Profile(r.Context(), id)
	switch {
	case err == nil:
		resp.Profile = &profileJSON{Name: p.Name, Surname: p.Surname, Email: p.Email, CreatedAt: p.CreatedAt}
	case errors.Is(err, domain.ErrNotFound):
	default:
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
