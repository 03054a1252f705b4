package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var Version string

func SetVersion(version string) {
	Version = version
}

// SetDefaults installs the engine's default settings into viper. Every value
// can be overridden by flag, environment or config file.
func SetDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".depcraft")

	viper.SetDefault("profiles-file", filepath.Join(dataDir, "profiles.toml"))
	viper.SetDefault("hash-cache", filepath.Join(dataDir, "hashcache.db"))
	viper.SetDefault("non-interactive", false)
}
