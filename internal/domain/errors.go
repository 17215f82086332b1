package domain

import "errors"

// Validation failures. Recoverable by re-editing the draft.
// Handlers should map all of them to HTTP 422 Unprocessable Entity.
var (
	// ErrMissingField is returned when a required draft field is empty or blank.
	ErrMissingField = errors.New("missing field")

	// ErrNotNumeric is returned when a coordinate does not parse as a finite decimal.
	ErrNotNumeric = errors.New("not numeric")

	// ErrInvalidArgument is returned for a malformed search parameter,
	// such as a non-positive radius.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Repository failures.
var (
	// ErrNotFound is returned by repo and service functions when the requested
	// record does not exist in the database.
	// Handlers should map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrWrite wraps any transport or store fault during a create, update or delete.
	// Callers must not assume the write was partially applied.
	ErrWrite = errors.New("write error")

	// ErrRead wraps any transport or store fault during a read.
	// Callers should treat it as "no data available".
	ErrRead = errors.New("read error")

	// ErrConflict is returned when a write would violate a uniqueness rule,
	// such as registering an email that already has an account.
	ErrConflict = errors.New("conflict")
)

// Asset upload outcomes.
var (
	// ErrPermissionDenied is returned when the caller lacks media-access rights.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUploadError wraps any object store fault during an upload.
	ErrUploadError = errors.New("upload error")

	// ErrUserCancelled signals that the picker was dismissed without a selection.
	// It is an early exit, not a failure, and carries no user-facing message.
	ErrUserCancelled = errors.New("user cancelled")
)

// Session failures.
var (
	// ErrAuth is returned when the identity provider rejects a registration or
	// sign-in. The wrapped message is the provider's own and is safe to show.
	ErrAuth = errors.New("auth error")

	// ErrUnauthenticated is returned when an operation that requires an owner
	// is attempted without an authenticated identity.
	ErrUnauthenticated = errors.New("not authenticated")
)
