package domain

import (
	"context"
	"io"
)

// FileStore is the port for chapter video storage. The core never assumes
// a fixed URL scheme: implementations own both persistence and public URL
// resolution.
type FileStore interface {
	// Put persists the file content and returns the stored key.
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	// PublicURL returns a publicly resolvable URL for a stored key.
	PublicURL(key string) string
	// Delete removes the stored file; missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
