package domain

// Config holds the application configuration persisted in the user's
// config file.
type Config struct {
	// DataDir is where the catalog database lives.
	DataDir string

	// Workers is the batch worker count. Zero means one worker per CPU.
	Workers int

	// Output holds default output options for parse and batch.
	Output OutputDefaults
}

// OutputDefaults are the output options applied when a command does not
// override them.
type OutputDefaults struct {
	// Pretty indents JSON output.
	Pretty bool

	// JSONL also writes a combined JSON-lines file during batch runs.
	JSONL bool

	// Graph also writes knowledge-graph outputs.
	Graph bool

	// Combined writes the combined listing during batch runs.
	Combined bool
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Workers: 0,
		Output: OutputDefaults{
			Graph:    true,
			Combined: true,
		},
	}
}
