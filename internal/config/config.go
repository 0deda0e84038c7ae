package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianshen/chunkmap/internal/output"
	"github.com/julianshen/chunkmap/internal/registry"
)

// Config represents the top-level application configuration.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

// AnalysisConfig holds settings for dependency analysis.
type AnalysisConfig struct {
	// Registry is the chunk registry path, relative to the project root
	// unless absolute.
	Registry string `toml:"registry"`
	// Concurrency bounds parallel file extraction; 0 means one per CPU.
	Concurrency int `toml:"concurrency"`
	// Cache is the SQLite import cache file; empty disables caching.
	Cache string `toml:"cache"`
}

// OutputConfig holds settings for report output.
type OutputConfig struct {
	Format string `toml:"format"`
	// Style is the glamour style for the text format. Empty picks "dark"
	// on a terminal and "notty" otherwise.
	Style string `toml:"style"`
	// Width is the text word-wrap width; 0 means the terminal width.
	Width int `toml:"width"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Registry:    registry.DefaultPath,
			Concurrency: 0,
		},
		Output: OutputConfig{
			Format: string(output.FormatJSON),
		},
	}
}

// DefaultPath returns ~/.config/chunkmap/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chunkmap", "config.toml"), nil
}

// Load reads configuration from a TOML file on top of DefaultConfig and
// applies environment variable overrides. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets CHUNKMAP_REGISTRY and CHUNKMAP_FORMAT take
// precedence over the file.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CHUNKMAP_REGISTRY")); v != "" {
		cfg.Analysis.Registry = v
	}
	if v := strings.TrimSpace(os.Getenv("CHUNKMAP_FORMAT")); v != "" {
		cfg.Output.Format = v
	}
}

// Validate returns an error if the configuration is invalid. All problems
// are reported on one line, separated by "; ".
func (c *Config) Validate() error {
	var (
		msgs      []string
		formatErr error
	)
	if c.Analysis.Concurrency < 0 {
		msgs = append(msgs, fmt.Sprintf("analysis.concurrency: must be >= 0, got %d", c.Analysis.Concurrency))
	}
	if _, err := output.New(c.Output.Format, output.Options{}); err != nil {
		formatErr = err
		msgs = append(msgs, "output.format: "+err.Error())
	}
	if c.Output.Width < 0 {
		msgs = append(msgs, fmt.Sprintf("output.width: must be >= 0, got %d", c.Output.Width))
	}
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Problems: msgs, format: formatErr}
}

// ValidationError lists every problem found by Validate.
type ValidationError struct {
	Problems []string
	format   error
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Unwrap exposes the output format error, if any, to errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.format
}
