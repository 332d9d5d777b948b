package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserDir is the per-user state directory, relative to $HOME.
const UserDir = ".bottlepop"

// LoadBottles loads the configuration for a Bottle Pop mode.
// Search order: customPath -> ~/.bottlepop/configs/<mode>.yaml -> ./configs/<mode>.yaml -> embedded default.
// Files are decoded on top of the mode defaults, so partial files are fine.
// Only an explicit customPath can produce a read or parse error; the other
// locations are skipped when missing or broken.
func LoadBottles(modeID, customPath string) (BottlesConfig, error) {
	cfg, err := loadYAML(modeID, customPath, DefaultFor)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadYAML walks the search order for one mode and decodes the first usable file.
func loadYAML[T any](modeID, customPath string, defaults func(string) T) (T, error) {
	filename := modeID + ".yaml"

	if customPath != "" {
		cfg := defaults(modeID)
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := make([]string, 0, 2)
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append(candidates, userCfgPath)
	}
	candidates = append(candidates, filepath.Join("configs", filename))

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults(modeID)
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults(modeID)
	if embedded := GetDefaultYAML(modeID); embedded != nil {
		if err := yaml.Unmarshal(embedded, &cfg); err != nil {
			return defaults(modeID), nil // Fallback to hardcoded if embed fails
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDir, "configs", filename)
}

// ApplyBottlesPreset modifies the config based on a difficulty preset.
func ApplyBottlesPreset(cfg *BottlesConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Tap reach is the main forgiveness knob
	switch preset {
	case DifficultyEasy:
		cfg.Tap.SlopX++
		cfg.Tap.SlopY++
	case DifficultyHard:
		cfg.Tap.SlopX = 0
		cfg.Tap.SlopY = 0
	}
}
