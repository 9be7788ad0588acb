package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for grip.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Scan   ScanConfig   `yaml:"scan"`
}

// LayoutConfig describes the project layout convention, relative to the
// project root.
type LayoutConfig struct {
	AppDir     string `yaml:"app_dir"`
	APIDir     string `yaml:"api_dir"`
	LibDir     string `yaml:"lib_dir"`
	QueriesDir string `yaml:"queries_dir"`
	BarrelFile string `yaml:"barrel_file"` // relative to queries_dir
}

// ScanConfig holds usage-extraction configuration.
type ScanConfig struct {
	// ImportPrefix is the import path of the query layer as consumers write
	// it, e.g. "@/db/queries". Concrete modules live under it; the bare
	// prefix is the barrel.
	ImportPrefix string `yaml:"import_prefix"`
	// Match selects the usage heuristic: "call" counts a symbol only when
	// its name is followed by an opening parenthesis, "reference" counts
	// any occurrence outside the import clause.
	Match    string   `yaml:"match"`
	Excludes []string `yaml:"excludes"`
}

const (
	MatchCall      = "call"
	MatchReference = "reference"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			AppDir:     "app",
			APIDir:     "app/api",
			LibDir:     "lib",
			QueriesDir: "db/queries",
			BarrelFile: "index.ts",
		},
		Scan: ScanConfig{
			ImportPrefix: "@/db/queries",
			Match:        MatchCall,
			Excludes:     []string{"**/node_modules/**", "**/.next/**", "**/dist/**", "**/build/**"},
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults for
// anything unset.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for grip.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "grip.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	switch c.Scan.Match {
	case MatchCall, MatchReference:
	default:
		return fmt.Errorf("scan.match must be %q or %q, got %q", MatchCall, MatchReference, c.Scan.Match)
	}
	if c.Scan.ImportPrefix == "" {
		return fmt.Errorf("scan.import_prefix must not be empty")
	}
	if c.Layout.QueriesDir == "" {
		return fmt.Errorf("layout.queries_dir must not be empty")
	}
	return nil
}
