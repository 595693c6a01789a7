package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"coffer/internal/activedb"
	"coffer/internal/config"
	"coffer/internal/logging"
	"coffer/internal/settings"
	"coffer/internal/signedfile"
	"coffer/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
}

// withManager opens both stores for the duration of fn. The active
// database closes when fn returns.
func (c *commandContext) withManager(cmd *cobra.Command, fn func(*storage.Manager, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cmd)
	if err != nil {
		return err
	}
	key, err := cfg.SecretKey()
	if err != nil {
		return err
	}
	signed, err := signedfile.New(cfg.Storage.Root, key)
	if err != nil {
		return err
	}
	active, err := activedb.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer active.Close()
	return fn(storage.New(signed, active, logger), logger)
}

func (c *commandContext) withService(cmd *cobra.Command, fn func(*settings.Service) error) error {
	return c.withManager(cmd, func(store *storage.Manager, logger *slog.Logger) error {
		return fn(settings.NewService(store, logger))
	})
}
