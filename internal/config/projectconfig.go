package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianshen/chunkmap/internal/classify"
	"github.com/julianshen/chunkmap/internal/project"
)

// ProjectFile is the per-project configuration file name.
const ProjectFile = ".chunkmap.yaml"

// ProjectConfig represents a project-level .chunkmap.yaml file.
type ProjectConfig struct {
	Probes ProbeConfig `yaml:"probes"`
}

// ProbeConfig lists extra path templates appended to the default tables.
// Each template must contain {name}.
type ProbeConfig struct {
	Internal []string `yaml:"internal"`
	Owner    []string `yaml:"owner"`
}

// LoadProjectConfig reads and parses .chunkmap.yaml from the given directory.
// Returns nil if the file does not exist or is empty.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		if project.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ProjectFile, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectFile, err)
	}

	if _, err := templates("internal", cfg.Probes.Internal); err != nil {
		return nil, err
	}
	if _, err := templates("owner", cfg.Probes.Owner); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InternalProbes returns the extra classification probes. A nil receiver
// yields none.
func (c *ProjectConfig) InternalProbes() classify.Probes {
	if c == nil {
		return nil
	}
	p, _ := templates("internal", c.Probes.Internal)
	return p
}

// OwnerProbes returns the extra ownership probes. A nil receiver yields
// none.
func (c *ProjectConfig) OwnerProbes() classify.Probes {
	if c == nil {
		return nil
	}
	p, _ := templates("owner", c.Probes.Owner)
	return p
}

func templates(field string, patterns []string) (classify.Probes, error) {
	var out classify.Probes
	for i, pattern := range patterns {
		t, err := classify.Template(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: probes.%s[%d]: %w", ProjectFile, field, i, err)
		}
		out = append(out, t)
	}
	return out, nil
}
