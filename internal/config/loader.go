package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "snakebot.yaml"

// Load reads the configuration and validates it.
// Search order: customPath -> ~/.snakebot/config.yaml -> ./configs/snakebot.yaml -> embedded default.
// Missing fields keep their built-in values. The returned source names
// where the configuration came from.
func Load(customPath string) (cfg Config, source string, err error) {
	cfg = Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := Default()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			continue
		}
		return fileCfg, path, fileCfg.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), "built-in", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", cfg.Validate()
}

// Dir returns ~/.snakebot, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakebot")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
