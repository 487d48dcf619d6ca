package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"shelfmark/internal/config"
	"shelfmark/internal/identify"
	"shelfmark/internal/identify/comicvine"
	"shelfmark/internal/identify/googlebooks"
	"shelfmark/internal/logging"
	"shelfmark/internal/lookupcache"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("initialize logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openLookupCache loads the on-disk lookup cache configured for this run.
func (c *commandContext) openLookupCache() (*lookupcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return lookupcache.New(cfg.Cache.Path, logger), nil
}

// buildSource wires the configured online source, or returns nil when the
// scan mode never goes online.
func (c *commandContext) buildSource(cfg *config.Config, cache identify.Cache, status identify.StatusFunc) (identify.Source, error) {
	if cfg.Scan.Mode == config.ScanModeLocal {
		return nil, nil
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	switch cfg.Scan.Source {
	case config.SourceComicVine:
		client, err := comicvine.New(cfg.ComicVine.APIKey, cfg.ComicVine.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configure ComicVine client: %w", err)
		}
		return identify.NewComicVineSource(client, cache, status, logger), nil
	default:
		client, err := googlebooks.New(cfg.GoogleBooks.APIKey, cfg.GoogleBooks.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configure Google Books client: %w", err)
		}
		var opts []identify.GoogleBooksOption
		if cfg.GoogleBooks.VolumeQueries {
			opts = append(opts, identify.WithVolumeQueries())
		}
		return identify.NewGoogleBooksSource(client, cache, nil, status, logger, opts...), nil
	}
}
