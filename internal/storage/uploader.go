package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pocketbase/pocketbase/tools/filesystem"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ImageHandle references a locally selected image: either a device path or
// an in-memory blob. Data wins when both are set.
type ImageHandle struct {
	Path     string
	Data     []byte
	FileName string

	// Quality is an optional compression hint in (0, 1]. Zero means none.
	// JPEG images are re-encoded when the hint is below 1.
	Quality float64
}

// Picker is the device media picker. Pick returns domain.ErrUserCancelled when
// the picker is dismissed and domain.ErrPermissionDenied when media access is
// refused.
type Picker interface {
	Pick(ctx context.Context) (ImageHandle, error)
}

// blobStore is the slice of *filesystem.System the uploader needs.
type blobStore interface {
	UploadFile(file *filesystem.File, fileKey string) error
}

// Uploader writes images to the object store. It never retries.
type Uploader struct {
	store     blobStore
	publicURL string
	now       func() time.Time
}

// NewUploader constructs an Uploader. publicURL is the base URL under which
// stored keys are publicly reachable.
func NewUploader(store blobStore, publicURL string) *Uploader {
	return &Uploader{store: store, publicURL: publicURL, now: time.Now}
}

// PickAndUpload runs the picker and uploads its selection.
// Picker outcomes (cancelled, denied) are returned unchanged.
func (u *Uploader) PickAndUpload(ctx context.Context, p Picker) (string, error) {
	img, err := p.Pick(ctx)
	if err != nil {
		return "", err
	}
	return u.Upload(ctx, img)
}

// Upload stores img under a fresh key and returns its public URL.
// Any failure is reported as domain.ErrUploadError.
func (u *Uploader) Upload(ctx context.Context, img ImageHandle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", uploadErr(err)
	}

	data, name, err := load(img)
	if err != nil {
		return "", uploadErr(err)
	}
	if len(data) == 0 {
		return "", uploadErr(errors.New("image is empty"))
	}
	data = compress(data, img.Quality)

	file, err := filesystem.NewFileFromBytes(data, nameOr(name, "image.jpg"))
	if err != nil {
		return "", uploadErr(err)
	}

	key := u.key(file.Name)
	if err := u.store.UploadFile(file, key); err != nil {
		return "", uploadErr(err)
	}

	publicURL, err := url.JoinPath(u.publicURL, key)
	if err != nil {
		return "", uploadErr(err)
	}
	return publicURL, nil
}

// key prefixes the store's randomised file name with the upload time.
// Unnamed images are stored as "image.jpg", which the store randomises too.
func (u *Uploader) key(storedName string) string {
	return fmt.Sprintf("%d_%s", u.now().UnixMilli(), storedName)
}

// load returns the image bytes and the best available original file name.
func load(img ImageHandle) ([]byte, string, error) {
	name := img.FileName
	if name == "" && img.Path != "" {
		name = filepath.Base(img.Path)
	}
	if img.Data != nil {
		return img.Data, name, nil
	}
	if img.Path == "" {
		return nil, "", errors.New("image handle has neither data nor path")
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", img.Path, err)
	}
	return data, name, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func uploadErr(err error) error {
	return fmt.Errorf("storage.Uploader.Upload: %w: %w", domain.ErrUploadError, err)
}
