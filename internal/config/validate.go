package config

import (
	"fmt"

	"coffer/internal/faults"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	if c.Storage.Root == "" {
		return faults.Wrap(faults.ErrConfiguration, "config", "validate", "storage.root must be set", nil)
	}
	if c.Storage.KeyFile == "" {
		return faults.Wrap(faults.ErrConfiguration, "config", "validate", "storage.key_file must be set", nil)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of auto, console, json; got %q", c.Logging.Format)
	}
	return nil
}
