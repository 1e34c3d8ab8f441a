package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jentor/strata/pkg/layout"
)

// fileConfig is the TOML configuration file layout:
//
//	[layout]
//	layer_spacing = 80.0
//	node_spacing = 50.0
//	margin = 20.0
//	max_nodes = 5000
//	max_edges = 20000
//	crossing_iterations = 24
//	routing_style = "straight"
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
}

// loadLayoutConfig resolves the layout configuration for a command: the
// defaults, overridden by a TOML config file when one is given or found.
// The returned string names the file actually used, empty when none.
func loadLayoutConfig(explicit string) (layout.Config, string, error) {
	cfg := layout.DefaultConfig()

	path := explicit
	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, "", nil
	}

	fc := fileConfig{Layout: cfg}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, "", fmt.Errorf("load config %s: %w", path, err)
	}
	return fc.Layout, path, nil
}

// findConfigFile looks for strata.toml in the working directory, then in
// the XDG config directory.
func findConfigFile() string {
	candidates := []string{appName + ".toml"}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, "config.toml"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
