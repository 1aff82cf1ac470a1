// Package filesystem loads SPL XML documents from local directories.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads SPL XML files from the local filesystem.
type Loader struct{}

// NewLoader creates a filesystem loader.
func NewLoader() *Loader {
	return &Loader{}
}

// ListDocuments returns every *.xml file under dir (one level, matching
// how DailyMed archives unpack), sorted by path for deterministic batch
// order.
func (l *Loader) ListDocuments(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(resolvePath(dir))
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDocuments, dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// Open opens one source file for reading.
func (l *Loader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(resolvePath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// resolvePath converts a file:// URI to a local path. Bare paths pass
// through unchanged.
func resolvePath(path string) string {
	return strings.TrimPrefix(path, "file://")
}
