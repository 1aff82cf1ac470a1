package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileConfig is the on-disk TOML shape. Kept separate from domain.Config
// so field tags stay an adapter concern.
type fileConfig struct {
	DataDir string           `toml:"data_dir"`
	Workers int              `toml:"workers"`
	Output  fileOutputConfig `toml:"output"`
}

type fileOutputConfig struct {
	Pretty   bool `toml:"pretty"`
	JSONL    bool `toml:"jsonl"`
	Graph    bool `toml:"graph"`
	Combined bool `toml:"combined"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the splgraph config directory.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.splgraph.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".splgraph")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads configuration from disk. A missing file yields the defaults.
func (s *ConfigStore) Load() (*domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Seed from defaults so keys absent from the file keep them.
	fc := fileConfig{
		DataDir: cfg.DataDir,
		Workers: cfg.Workers,
		Output: fileOutputConfig{
			Pretty:   cfg.Output.Pretty,
			JSONL:    cfg.Output.JSONL,
			Graph:    cfg.Output.Graph,
			Combined: cfg.Output.Combined,
		},
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", s.filePath, err)
	}

	cfg = domain.Config{
		DataDir: fc.DataDir,
		Workers: fc.Workers,
		Output: domain.OutputDefaults{
			Pretty:   fc.Output.Pretty,
			JSONL:    fc.Output.JSONL,
			Graph:    fc.Output.Graph,
			Combined: fc.Output.Combined,
		},
	}
	return &cfg, nil
}

// Save persists the configuration to disk.
func (s *ConfigStore) Save(cfg *domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fc := fileConfig{
		DataDir: cfg.DataDir,
		Workers: cfg.Workers,
		Output: fileOutputConfig{
			Pretty:   cfg.Output.Pretty,
			JSONL:    cfg.Output.JSONL,
			Graph:    cfg.Output.Graph,
			Combined: cfg.Output.Combined,
		},
	}

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
