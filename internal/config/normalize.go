package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStorage() error {
	var err error
	if strings.TrimSpace(c.Storage.Root) == "" {
		c.Storage.Root = defaultStoreRoot
	}
	if c.Storage.Root, err = expandPath(c.Storage.Root); err != nil {
		return fmt.Errorf("storage.root: %w", err)
	}
	if strings.TrimSpace(c.Storage.Database) != "" {
		if c.Storage.Database, err = expandPath(c.Storage.Database); err != nil {
			return fmt.Errorf("storage.database: %w", err)
		}
	} else {
		c.Storage.Database = ""
	}
	if strings.TrimSpace(c.Storage.KeyFile) == "" {
		c.Storage.KeyFile = defaultKeyFile
	}
	if c.Storage.KeyFile, err = expandPath(c.Storage.KeyFile); err != nil {
		return fmt.Errorf("storage.key_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
