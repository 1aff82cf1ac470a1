package driven

import "github.com/custodia-labs/splgraph-cli/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files).
type ConfigStore interface {
	// Load reads configuration from storage. A missing file yields the
	// defaults, not an error.
	Load() (*domain.Config, error)

	// Save persists the configuration to storage.
	Save(cfg *domain.Config) error

	// Path returns the configuration file path.
	Path() string
}
