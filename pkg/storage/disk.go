// Package storage is the filesystem abstraction banner images are published
// to. Two drivers exist:
//   - "local": local filesystem (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2)
//
//	m := storage.Connect(ctx)
//	disk, err := m.Default()
//	err = disk.Put(ctx, "banners/3.png", data, "image/png")
//	url := disk.URL("banners/3.png")
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing path.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, replacing any existing file.
	Put(ctx context.Context, path string, content []byte, contentType string) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
