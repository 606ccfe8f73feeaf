package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"streamhub/internal/config"
	"streamhub/internal/health"
	"streamhub/internal/lifecycle"
	"streamhub/internal/logging"
	"streamhub/internal/store"
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

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
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

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// withStore opens the store for one invocation and closes it when fn returns.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, st)
}

// withController builds the lifecycle controller over a per-invocation store.
func (c *commandContext) withController(fn func(*config.Config, *store.Store, *lifecycle.Controller) error) error {
	return c.withStore(func(cfg *config.Config, st *store.Store) error {
		return fn(cfg, st, lifecycle.NewController(st, c.logger()))
	})
}

// withRecorder builds the health recorder with the controller's narrow
// degrade capability.
func (c *commandContext) withRecorder(fn func(*config.Config, *store.Store, *health.Recorder) error) error {
	return c.withStore(func(cfg *config.Config, st *store.Store) error {
		logger := c.logger()
		controller := lifecycle.NewController(st, logger)
		recorder := health.NewRecorder(st, controller.Degrader(), cfg.Health, logger)
		return fn(cfg, st, recorder)
	})
}
