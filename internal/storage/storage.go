// Package storage provides blob storage for case artifacts: the submitted
// checklist CSV, the results CSV, and the rendered compliance report.
//
// Two implementations exist: LocalStorage writes to the filesystem for
// development, R2Storage targets Cloudflare R2 (S3-compatible) in
// production.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage is the blob store used for case artifacts.
// All methods are context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at the specified key, replacing any existing object.
	Put(ctx context.Context, key string, data io.Reader, contentType string) error

	// Get retrieves the object at the specified key. The caller must close
	// the reader. Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at the specified key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string    // Object key/path
	Size         int64     // Size in bytes
	ContentType  string    // MIME type
	LastModified time.Time // Last modification time
}

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrNotFound is returned when a requested object doesn't exist.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidKey is returned when a storage key contains forbidden
	// elements (path traversal, absolute paths, blank keys).
	ErrInvalidKey = errors.New("invalid storage key")
)

// StorageError wraps a storage operation failure with its operation and key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the error indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// =============================================================================
// Helpers
// =============================================================================

// validateKey rejects keys that could escape the storage root.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return ErrInvalidKey
	}
	return nil
}

// contentTypeForKey maps artifact extensions to MIME types.
func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".csv":
		return "text/csv"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
