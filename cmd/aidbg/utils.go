package main

import (
	"fmt"

	"github.com/jihwankim/roguelike-ai-core/pkg/config"
)

// loadConfig loads the configuration from cfgFile, falling back to
// config.Default() when the file does not exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", cfgFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
