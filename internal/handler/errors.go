package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail names the failure with a stable code and a displayable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// failure maps a domain sentinel to its HTTP status and code. Order matters:
// the first sentinel found in the chain wins.
type failure struct {
	sentinel error
	status   int
	code     string
	// message is used when the error text must not be shown (store faults).
	message string
}

var failures = []failure{
	{domain.ErrMissingField, http.StatusUnprocessableEntity, "missing_field", ""},
	{domain.ErrNotNumeric, http.StatusUnprocessableEntity, "not_numeric", ""},
	{domain.ErrInvalidArgument, http.StatusUnprocessableEntity, "invalid_argument", ""},
	{domain.ErrAuth, http.StatusUnauthorized, "auth_error", ""},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "sign in to continue"},
	{domain.ErrPermissionDenied, http.StatusForbidden, "permission_denied", "media access was denied"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "record not found"},
	{domain.ErrConflict, http.StatusConflict, "conflict", "record already exists"},
	{domain.ErrUploadError, http.StatusInternalServerError, "upload_error", "image upload failed"},
	{domain.ErrWrite, http.StatusInternalServerError, "write_error", "could not save changes"},
	{domain.ErrRead, http.StatusInternalServerError, "read_error", "could not load data"},
}

// fail writes err as an ErrorResponse. Server-side failures are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, f := range failures {
		if !errors.Is(err, f.sentinel) {
			continue
		}
		if f.status >= http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "request failed", "error", err, "code", f.code)
		}
		msg := f.message
		if msg == "" {
			msg = reason(err, f.sentinel)
		}
		writeError(w, f.status, f.code, msg)
		return
	}

	s.log.ErrorContext(r.Context(), "request failed", "error", err, "code", "internal_error")
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// reason extracts the human-readable part after a wrapped sentinel.
// e.g. "service.SessionService.SignIn: auth error: invalid email or password"
// yields "invalid email or password".
func reason(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// invalidBody answers a request whose body could not be decoded.
func invalidBody(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "invalid_body", message)
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
