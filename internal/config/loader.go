package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads and validates the game configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files are overlaid on the built-in defaults, so partial files are fine.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or unparsable files are skipped; invalid values are not.
	candidates := []string{userConfigPath("flappy.yaml"), filepath.Join("configs", "flappy.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := decode(data)
		if err != nil {
			continue
		}
		if err := cfg.Validate(); err != nil {
			return FlappyConfig{}, fmt.Errorf("config: %s: %w", path, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (FlappyConfig, error) {
	cfg, err := decode(data)
	if err != nil {
		return FlappyConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

func decode(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// yaml replaces whole map values; known styles overlay their defaults
	// field by field instead.
	var raw struct {
		Styles map[string]yaml.Node `yaml:"styles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	defaults := DefaultFlappyConfig().Styles
	for name, node := range raw.Styles {
		style, ok := defaults[name]
		if !ok {
			continue
		}
		if err := node.Decode(&style); err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to parse style %q: %w", name, err)
		}
		cfg.Styles[name] = style
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
