// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultStateDir returns where appops keeps its log file by default.
// Uses ~/.local/state/appops for user installations, /var/log/appops as fallback.
func DefaultStateDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state", "appops")
	}
	return "/var/log/appops"
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: appops.toml
// Search paths (in order): /etc/appops, ~/.config/appops, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("appops")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/appops")
		v.AddConfigPath("$HOME/.config/appops")
		v.AddConfigPath(".")
	}
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
