package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/storage"
)

// multipartMemory is how much of a multipart form is buffered in memory
// before spilling to temp files.
const multipartMemory = 8 << 20

// formPicker is the server-side media picker: the "image" part of a
// multipart form. A form without one is a dismissed picker.
type formPicker struct {
	r *http.Request
}

func (p formPicker) Pick(context.Context) (storage.ImageHandle, error) {
	file, header, err := p.r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return storage.ImageHandle{}, domain.ErrUserCancelled
	}
	if err != nil {
		return storage.ImageHandle{}, fmt.Errorf("%w: %w", domain.ErrUploadError, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return storage.ImageHandle{}, fmt.Errorf("%w: %w", domain.ErrUploadError, err)
	}

	var quality float64
	if raw := p.r.FormValue("quality"); raw != "" {
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil || q <= 0 || q > 1 {
			return storage.ImageHandle{}, fmt.Errorf("%w: quality must be a number in (0, 1]", domain.ErrInvalidArgument)
		}
		quality = q
	}

	return storage.ImageHandle{Data: data, FileName: header.Filename, Quality: quality}, nil
}

// Upload handles POST /uploads (multipart/form-data with an "image" part and
// an optional "quality" hint). Responds 201 {"imageUrl"} or, when no image
// was selected, 204 with no body.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		invalidBody(w, "expected multipart/form-data")
		return
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return
		}
		invalidBody(w, err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	url, err := s.uploads.PickAndUpload(r.Context(), formPicker{r: r})
	if errors.Is(err, domain.ErrUserCancelled) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadJSON{ImageURL: url})
}

// GetFile handles GET /files/{key}, serving objects from the store.
// Sidecar attribute files written by the local driver are never served.
func (s *Server) GetFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if s.files == nil || key == "" || strings.HasSuffix(key, ".attrs") || strings.Contains(key, "..") {
		s.fail(w, r, domain.ErrNotFound)
		return
	}

	ok, err := s.files.Exists(key)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", domain.ErrRead, err))
		return
	}
	if !ok {
		s.fail(w, r, domain.ErrNotFound)
		return
	}
	if err := s.files.Serve(w, r, key, key); err != nil {
		s.log.ErrorContext(r.Context(), "serve file", "key", key, "error", err)
	}
}
