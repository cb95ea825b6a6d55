package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathEnvVar overrides the default model file location.
const PathEnvVar = "QUESTIONER_CONFIG"

// DefaultPath resolves the model file path in priority order:
// 1. QUESTIONER_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/questioner/config.json
// 3. ~/.config/questioner/config.json
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "questioner", "config.json"), nil
}
