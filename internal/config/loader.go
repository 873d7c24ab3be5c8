package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/run1.yaml
var defaultRun1YAML []byte

//go:embed defaults/run2.yaml
var defaultRun2YAML []byte

//go:embed defaults/run3.yaml
var defaultRun3YAML []byte

var embedded = map[string][]byte{
	"run1": defaultRun1YAML,
	"run2": defaultRun2YAML,
	"run3": defaultRun3YAML,
}

// LevelIDs returns the identifiers of the built-in levels in play order.
func LevelIDs() []string {
	ids := make([]string, 0, len(embedded))
	for id := range embedded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Default returns the embedded configuration for a built-in level.
func Default(id string) (LevelConfig, error) {
	data, ok := embedded[id]
	if !ok {
		return LevelConfig{}, fmt.Errorf("config: unknown level %q", id)
	}
	return Parse(data)
}

// Parse decodes and validates a level YAML document.
func Parse(data []byte) (LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load loads a level configuration.
// Search order: customPath -> ~/.runner/levels/<id>.yaml -> ./levels/<id>.yaml -> embedded default
//
// A custom path must exist and be valid. Broken files on the search path are
// skipped in favour of the next candidate.
func Load(id, customPath string) (LevelConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LevelConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"

	// Try user config directory
	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local levels directory
	if data, err := os.ReadFile(filepath.Join("levels", filename)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return Default(id)
}

// userConfigPath returns the path to a user level file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "levels", filename)
}
