package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// IdentityResolver turns a bearer token into an identity.
// Implemented by service.SessionService.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (domain.Identity, error)
}

type ctxKey int

const (
	identityKey ctxKey = iota
	tokenKey
	slotKey
)

// identitySlot lets an outer middleware (the request logger) see the
// identity resolved by an inner one.
type identitySlot struct {
	id domain.Identity
}

func withIdentitySlot(r *http.Request) (*http.Request, *identitySlot) {
	slot := &identitySlot{}
	return r.WithContext(context.WithValue(r.Context(), slotKey, slot)), slot
}

// NewSessionResolver returns a middleware that reads an "Authorization: Bearer
// <token>" header and stores the resolved identity and token in the request
// context. Requests without a live session continue as domain.Anonymous.
// If the session store cannot be read the request fails with 500.
func NewSessionResolver(resolver IdentityResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			id := domain.Anonymous
			if token != "" {
				var err error
				id, err = resolver.CurrentIdentity(r.Context(), token)
				if err != nil {
					log.ErrorContext(r.Context(), "resolve session", "error", err)
					writeError(w, http.StatusInternalServerError, "read_error", "could not read session")
					return
				}
			}

			if slot, ok := r.Context().Value(slotKey).(*identitySlot); ok {
				slot.id = id
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
// Wire it after NewSessionResolver.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFrom(r.Context()).Authenticated() {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the identity stored by NewSessionResolver, or
// domain.Anonymous.
func IdentityFrom(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return id
	}
	return domain.Anonymous
}

// TokenFrom returns the bearer token the request carried, or "".
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithIdentity returns a copy of ctx carrying id. Intended for tests.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
