// Package blob stores generated artifacts (backups, report workbooks) in a
// local directory, an S3-compatible bucket, or memory.
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mos234/vegetable-orders/internal/shared"
)

// Driver identifies a blob backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// ErrNotFound is returned when a key has no blob.
var ErrNotFound = fmt.Errorf("blob %w", shared.ErrNotFound)

// Info describes a stored blob.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Store is a minimal S3-like object store. Put replaces existing blobs.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() Driver
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return "", fmt.Errorf("blob: empty key")
	case strings.HasPrefix(key, "/"):
		return "", fmt.Errorf("blob: absolute key %q", key)
	case strings.Contains(key, ".."):
		return "", fmt.Errorf("blob: key %q contains '..'", key)
	}
	return key, nil
}
