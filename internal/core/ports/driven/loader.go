package driven

import (
	"context"
	"io"
)

// DocumentLoader enumerates and opens SPL XML source files.
type DocumentLoader interface {
	// ListDocuments returns the XML files under dir, sorted by path.
	// Returns domain.ErrNoDocuments when the directory holds none.
	ListDocuments(ctx context.Context, dir string) ([]string, error)

	// Open opens one source file for reading. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
