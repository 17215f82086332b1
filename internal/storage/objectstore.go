// Package storage uploads picked images to the object store and resolves the
// public URL they can be fetched from.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/pocketbase/pocketbase/tools/filesystem"
)

// Supported object store drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Options selects and configures the object store backend.
type Options struct {
	Driver string // DriverLocal or DriverS3
	Bucket string

	// LocalDir is the root directory for DriverLocal. Objects live in LocalDir/Bucket.
	LocalDir string

	// S3 settings for DriverS3.
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
}

// LocalRoot returns the directory that holds the bucket's objects for DriverLocal.
func (o Options) LocalRoot() string {
	return filepath.Join(o.LocalDir, o.Bucket)
}

// Open returns the object store described by opts. Callers must Close it.
func Open(opts Options) (*filesystem.System, error) {
	switch opts.Driver {
	case DriverLocal:
		fsys, err := filesystem.NewLocal(opts.LocalRoot())
		if err != nil {
			return nil, fmt.Errorf("storage.Open: local %q: %w", opts.LocalRoot(), err)
		}
		return fsys, nil
	case DriverS3:
		fsys, err := filesystem.NewS3(opts.Bucket, opts.Region, opts.Endpoint,
			opts.AccessKey, opts.SecretKey, opts.ForcePathStyle)
		if err != nil {
			return nil, fmt.Errorf("storage.Open: s3 bucket %q: %w", opts.Bucket, err)
		}
		return fsys, nil
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", opts.Driver)
	}
}
