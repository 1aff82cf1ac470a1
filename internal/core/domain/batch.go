package domain

import "time"

// BatchRun records the outcome of one batch processing run over an input
// directory.
type BatchRun struct {
	// RunID uniquely identifies the run.
	RunID string

	// InputDir is the directory the run processed.
	InputDir string

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run completed.
	EndedAt time.Time

	// Total is the number of XML files discovered.
	Total int

	// Processed is the number of files parsed successfully.
	Processed int

	// Failed is the number of files that could not be parsed.
	Failed int

	// Failures lists each failed file with its error message. Failures
	// never abort a run; they are reported here per file.
	Failures []FileError
}

// FileError pairs an input path with the error it produced.
type FileError struct {
	Path  string
	Error string
}
