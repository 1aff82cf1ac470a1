package driven

// OutputWriter writes result documents to the filesystem.
// Implementations must be safe for concurrent use: batch workers write
// per-file outputs in parallel.
type OutputWriter interface {
	// WriteJSON marshals v to path as a single JSON document, creating
	// parent directories as needed.
	WriteJSON(path string, v any, pretty bool) error

	// AppendJSONL appends v to path as one JSON line.
	AppendJSONL(path string, v any) error
}
