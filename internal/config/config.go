// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all jobtrail data
	BaseDir string

	// Debug enables verbose database logging
	Debug bool

	// Sync settings for the external sync agent
	Sync SyncConfig
}

// SyncConfig holds settings consumed by the external sync agent. The core
// store only records changes; pushing them anywhere is the agent's job.
type SyncConfig struct {
	// Endpoint of the remote service (empty disables the agent)
	Endpoint string
	// BatchSize is how many outbox events the agent drains per pull
	BatchSize int
	// MaxRetries before an event is reported as failed in `jobtrail events`
	MaxRetries int
}

// DefaultSyncConfig returns sensible defaults.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		Endpoint:   "",
		BatchSize:  100,
		MaxRetries: 5,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		Debug:   false,
		Sync:    DefaultSyncConfig(),
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("JOBTRAIL_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if debug := os.Getenv("JOBTRAIL_DEBUG"); debug != "" {
		cfg.Debug, _ = strconv.ParseBool(debug)
	}
	if endpoint := os.Getenv("JOBTRAIL_SYNC_ENDPOINT"); endpoint != "" {
		cfg.Sync.Endpoint = endpoint
	}
	if batch := os.Getenv("JOBTRAIL_SYNC_BATCH_SIZE"); batch != "" {
		if n, err := strconv.Atoi(batch); err == nil && n > 0 {
			cfg.Sync.BatchSize = n
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		LogDir(cfg),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
