package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an authenticated user as seen by the rest of the system.
// The zero value is Anonymous.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// Anonymous is the "not authenticated" sentinel.
var Anonymous = Identity{}

// Authenticated reports whether i names a real account.
func (i Identity) Authenticated() bool {
	return i.UserID != uuid.Nil
}

// Session pairs an identity with the bearer token that proves it.
type Session struct {
	Token    string
	Identity Identity
}

// Profile is the user record written once at registration, keyed by the
// identity's UserID.
type Profile struct {
	ID        uuid.UUID
	Name      string
	Surname   string
	Email     string
	CreatedAt time.Time
}

// Registration is the input to a sign-up.
// Email and password format rules belong to the identity provider.
type Registration struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

// Account is the identity provider's credential record.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
