package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Config   string // Config file
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "jobtrail.db"),
		Config:   filepath.Join(cfg.BaseDir, "config.yaml"),
		Logs:     LogDir(cfg),
	}
}

// LogDir returns the log directory for the given config.
func LogDir(cfg *Config) string {
	return filepath.Join(cfg.BaseDir, "logs")
}

// DefaultBaseDir returns the default base directory, following the XDG data
// home convention.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "jobtrail")
}
