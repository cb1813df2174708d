package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the config directories.
const FileName = "slideshow.yaml"

// Load loads slideshow settings.
// Search order: customPath -> ~/.slideshow/configs/slideshow.yaml -> ./configs/slideshow.yaml -> embedded default.
// Files are applied over DefaultSettings, so keys they omit keep their defaults.
func Load(customPath string) (Settings, error) {
	cfg := DefaultSettings()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if ok := tryLoad(userCfgPath, &cfg); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if ok := tryLoad(filepath.Join("configs", FileName), &cfg); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	embedded := DefaultSettings()
	if err := yaml.Unmarshal(defaultSettingsYAML, &embedded); err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad applies the file at path to cfg. cfg is untouched unless the file
// exists and parses.
func tryLoad(path string, cfg *Settings) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	next := *cfg
	if err := yaml.Unmarshal(data, &next); err != nil {
		return false
	}
	*cfg = next
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slideshow", "configs", filename)
}
