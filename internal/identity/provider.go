// Package identity is the email/password identity provider: it owns account
// credentials (Postgres, bcrypt hashes), the email and password format rules,
// and bearer-token sessions (Redis).
//
// Every rejection is returned as domain.ErrAuth wrapped with a message that is
// safe to show to the user as-is.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// MinPasswordLength is the shortest password the provider accepts.
const MinPasswordLength = 6

// Rejection messages surfaced to users.
const (
	msgInvalidEmail   = "invalid email address"
	msgWeakPassword   = "password should be at least 6 characters"
	msgLongPassword   = "password is too long"
	msgEmailInUse     = "email already in use"
	msgBadCredentials = "invalid email or password"
)

// Provider registers accounts, checks credentials, and manages sessions.
type Provider struct {
	accounts repo.AccountRepo
	sessions *SessionStore
	cost     int

	// dummyHash is compared against when an email is unknown so that sign-in
	// takes the same time whether or not the account exists. Built on first use.
	dummyHash func() []byte
}

// NewProvider constructs a Provider. Pass bcrypt.MinCost as cost in tests;
// values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewProvider(accounts repo.AccountRepo, sessions *SessionStore, cost int) *Provider {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Provider{
		accounts: accounts,
		sessions: sessions,
		cost:     cost,
		dummyHash: sync.OnceValue(func() []byte {
			h, _ := bcrypt.GenerateFromPassword([]byte("travel-planner"), cost)
			return h
		}),
	}
}

// CreateAccount registers email/password and returns the new identity.
// It does not start a session.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (domain.Identity, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return domain.Anonymous, reject(msgInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		return domain.Anonymous, reject(msgWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.Anonymous, reject(msgLongPassword)
		}
		return domain.Anonymous, fmt.Errorf("identity.Provider.CreateAccount: hash: %w", err)
	}

	acct, err := p.accounts.Create(ctx, addr.Address, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Anonymous, reject(msgEmailInUse)
		}
		return domain.Anonymous, fmt.Errorf("identity.Provider.CreateAccount: %w", err)
	}
	return domain.Identity{UserID: acct.ID, Email: acct.Email}, nil
}

// Authenticate checks email/password and returns the matching identity.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	acct, err := p.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(p.dummyHash(), []byte(password))
			return domain.Anonymous, reject(msgBadCredentials)
		}
		return domain.Anonymous, fmt.Errorf("identity.Provider.Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return domain.Anonymous, reject(msgBadCredentials)
	}
	return domain.Identity{UserID: acct.ID, Email: acct.Email}, nil
}

// DeleteAccount removes the account behind id. Register uses it to undo an
// account whose profile could not be stored.
func (p *Provider) DeleteAccount(ctx context.Context, id domain.Identity) error {
	if err := p.accounts.Delete(ctx, id.UserID); err != nil {
		return fmt.Errorf("identity.Provider.DeleteAccount: %w", err)
	}
	return nil
}

// StartSession issues a bearer token for id.
func (p *Provider) StartSession(ctx context.Context, id domain.Identity) (domain.Session, error) {
	return p.sessions.Start(ctx, id)
}

// Identify resolves a bearer token. Unknown tokens resolve to domain.Anonymous.
func (p *Provider) Identify(ctx context.Context, token string) (domain.Identity, error) {
	return p.sessions.Lookup(ctx, token)
}

// EndSession revokes a bearer token. Idempotent.
func (p *Provider) EndSession(ctx context.Context, token string) error {
	return p.sessions.End(ctx, token)
}

func reject(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrAuth, msg)
}
