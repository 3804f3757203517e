package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPins loads pin game configuration.
// Search order: customPath -> ~/.puzzles/configs/pins.yaml -> ./configs/pins.yaml -> embedded default
func LoadPins(customPath string) (PinsConfig, error) {
	cfg := DefaultPinsConfig()
	if err := load("pins.yaml", customPath, defaultPinsYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEscape loads escape configuration.
// Search order: customPath -> ~/.puzzles/configs/escape.yaml -> ./configs/escape.yaml -> embedded default
func LoadEscape(customPath string) (EscapeConfig, error) {
	cfg := DefaultEscapeConfig()
	if err := load("escape.yaml", customPath, defaultEscapeYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first readable source over cfg, which holds the
// hardcoded defaults. Fields missing from a file keep their default.
func load(filename, customPath string, embedded []byte, cfg any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded values already in cfg remain
	// if it fails to decode.
	_ = yaml.Unmarshal(embedded, cfg)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".puzzles", "configs", filename)
}
