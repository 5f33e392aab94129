package config

import (
	"fmt"

	"github.com/yndnr/nullmap-go/internal/infra/confloader"
)

// Load reads the configuration from path (optional), NULLMAP_ environment
// variables and overrides, on top of Default(), and verifies the result.
// The returned loader can reload the same sources later.
func Load(path string, overrides map[string]any) (*Config, *confloader.Loader, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)

	cfg := Default()
	if err := loader.Load(cfg); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// Reload loads the sources of loader into a fresh default configuration.
func Reload(loader *confloader.Loader) (*Config, error) {
	cfg := Default()
	if err := loader.Reload(cfg); err != nil {
		return nil, fmt.Errorf("reload config: %w", err)
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
