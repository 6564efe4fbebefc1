package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBeerPong loads beer pong configuration. Files may be partial; missing
// keys keep their default values.
// Search order: customPath -> ~/.beerpong/configs/beerpong.yaml -> ./configs/beerpong.yaml -> embedded default
func LoadBeerPong(customPath string) (BeerPongConfig, error) {
	cfg := DefaultBeerPongConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("beerpong.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultBeerPongConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "beerpong.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultBeerPongConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBeerPongYAML, &cfg); err != nil {
		return DefaultBeerPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beerpong", "configs", filename)
}

// ApplyBeerPongPreset modifies the config based on a difficulty preset.
func ApplyBeerPongPreset(cfg *BeerPongConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the table based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Throw.WobbleDeg = 0.3
		cfg.Throw.WobbleFrac = 0.005
		cfg.Rack.SpacingRatio = 1.0
		cfg.Placement.EdgeMargin = 0.4
	case DifficultyHard:
		cfg.Throw.WobbleDeg = 2.5
		cfg.Throw.WobbleFrac = 0.04
		cfg.Rack.SpacingRatio = 1.3
		cfg.Placement.EdgeMargin = 0.2
	}
}
