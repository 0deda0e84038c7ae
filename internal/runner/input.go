package runner

import (
	"path/filepath"
	"strings"

	"github.com/julianshen/chunkmap/internal/registry"
)

// ResolveRegistryPath determines which registry file to read.
// Priority: flagPath > configPath > registry.DefaultPath.
// Relative paths are taken relative to root.
func ResolveRegistryPath(root, flagPath, configPath string) string {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = strings.TrimSpace(configPath)
	}
	if path == "" {
		path = registry.DefaultPath
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
