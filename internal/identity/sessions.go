package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-planner/internal/domain"
)

// DefaultSessionTTL applies when NewSessionStore is given a non-positive TTL.
const DefaultSessionTTL = 30 * 24 * time.Hour

// tokenBytes is the amount of randomness in a bearer token.
const tokenBytes = 32

// SessionStore keeps bearer tokens in Redis. Each token maps to the identity
// it was issued for and expires after the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore constructs a SessionStore. A non-positive ttl selects DefaultSessionTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Start issues a new token for id.
func (s *SessionStore) Start(ctx context.Context, id domain.Identity) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, fmt.Errorf("identity.SessionStore.Start: %w", err)
	}

	b, err := json.Marshal(id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("identity.SessionStore.Start: marshal: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(token), b, s.ttl).Err(); err != nil {
		return domain.Session{}, fmt.Errorf("identity.SessionStore.Start: %w: %w", domain.ErrWrite, err)
	}
	return domain.Session{Token: token, Identity: id}, nil
}

// Lookup returns the identity a token was issued for.
// Unknown, expired, and blank tokens resolve to domain.Anonymous with a nil error.
func (s *SessionStore) Lookup(ctx context.Context, token string) (domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Anonymous, nil
	}

	val, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Anonymous, nil
		}
		return domain.Anonymous, fmt.Errorf("identity.SessionStore.Lookup: %w: %w", domain.ErrRead, err)
	}

	var id domain.Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return domain.Anonymous, fmt.Errorf("identity.SessionStore.Lookup: unmarshal: %w", err)
	}
	return id, nil
}

// End revokes a token. Ending an unknown token is not an error.
func (s *SessionStore) End(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("identity.SessionStore.End: %w: %w", domain.ErrWrite, err)
	}
	return nil
}

// newToken returns a URL-safe random bearer token.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
