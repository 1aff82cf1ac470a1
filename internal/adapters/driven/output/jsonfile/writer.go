// Package jsonfile writes parse results as JSON and JSON-lines files.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.OutputWriter = (*Writer)(nil)

// Writer writes JSON outputs to the filesystem. A single mutex guards
// JSONL appends; per-file JSON writes target distinct paths and need no
// coordination beyond it.
type Writer struct {
	mu sync.Mutex
}

// NewWriter creates a JSON file writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteJSON marshals v to path, creating parent directories as needed.
// HTML escaping is disabled so section XHTML survives readable.
func (w *Writer) WriteJSON(path string, v any, pretty bool) error {
	data, err := marshal(v, pretty)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AppendJSONL appends v to path as one JSON line.
func (w *Writer) AppendJSONL(path string, v any) error {
	data, err := marshal(v, false)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

func marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
