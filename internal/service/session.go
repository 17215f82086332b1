package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/validate"
)

// IdentityProvider is the slice of identity.Provider the session gate uses.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (domain.Identity, error)
	DeleteAccount(ctx context.Context, id domain.Identity) error
	Authenticate(ctx context.Context, email, password string) (domain.Identity, error)
	StartSession(ctx context.Context, id domain.Identity) (domain.Session, error)
	Identify(ctx context.Context, token string) (domain.Identity, error)
	EndSession(ctx context.Context, token string) error
}

// SessionService is the session gate: register, sign in, sign out, and
// resolve the current identity from a bearer token.
type SessionService struct {
	provider IdentityProvider
	profiles repo.ProfileRepo
	log      *slog.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(p IdentityProvider, profiles repo.ProfileRepo, log *slog.Logger) *SessionService {
	return &SessionService{provider: p, profiles: profiles, log: log}
}

// Register creates an account, stores its profile, and starts a session.
// Blank name or surname fails with domain.ErrMissingField before the provider
// is contacted. Provider rejections are domain.ErrAuth.
// If the profile cannot be stored the account is deleted again, so the same
// email can retry.
func (s *SessionService) Register(ctx context.Context, r domain.Registration) (domain.Session, error) {
	if err := validate.Registration(r); err != nil {
		return domain.Session{}, err
	}

	id, err := s.provider.CreateAccount(ctx, r.Email, r.Password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Register: %w", err)
	}

	_, err = s.profiles.Create(ctx, domain.Profile{
		ID:      id.UserID,
		Name:    r.Name,
		Surname: r.Surname,
		Email:   id.Email,
	})
	if err != nil {
		if derr := s.provider.DeleteAccount(ctx, id); derr != nil {
			s.log.ErrorContext(ctx, "register: remove account without profile",
				"user_id", id.UserID, "error", derr)
		}
		return domain.Session{}, fmt.Errorf("service.SessionService.Register: %w", err)
	}

	sess, err := s.provider.StartSession(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Register: %w", err)
	}
	return sess, nil
}

// SignIn checks credentials and starts a session.
// Invalid credentials fail with domain.ErrAuth and no session is created.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	id, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.SignIn: %w", err)
	}
	sess, err := s.provider.StartSession(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.SignIn: %w", err)
	}
	return sess, nil
}

// SignOut invalidates token. It is idempotent and never fails the caller;
// a store fault is logged and the token simply expires on its own.
func (s *SessionService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.provider.EndSession(ctx, token); err != nil {
		s.log.ErrorContext(ctx, "sign out", "error", err)
	}
}

// CurrentIdentity resolves token to an identity, or domain.Anonymous when
// there is no live session.
func (s *SessionService) CurrentIdentity(ctx context.Context, token string) (domain.Identity, error) {
	id, err := s.provider.Identify(ctx, token)
	if err != nil {
		return domain.Anonymous, fmt.Errorf("service.SessionService.CurrentIdentity: %w", err)
	}
	return id, nil
}

// Profile returns the profile written for id at registration.
func (s *SessionService) Profile(ctx context.Context, id domain.Identity) (domain.Profile, error) {
	if !id.Authenticated() {
		return domain.Profile{}, fmt.Errorf("service.SessionService.Profile: %w", domain.ErrUnauthenticated)
	}
	p, err := s.profiles.GetByID(ctx, id.UserID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.SessionService.Profile: %w", err)
	}
	return p, nil
}
