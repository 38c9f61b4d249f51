package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/libraryapi"
	"folio/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
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

// logger returns the command logger, built once from the loaded config so
// mutations leave a trace in the log file. Construction failures fall back
// to a discard logger rather than blocking the command.
func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logging.Discard()
			return
		}
		log, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.log = logging.Discard()
			return
		}
		c.log = log
	})
	return c.log
}

func (c *commandContext) storeClient() (*libraryapi.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return libraryapi.New(cfg.Backend.BaseURL, libraryapi.WithAPIToken(cfg.Backend.APIToken))
}

func (c *commandContext) catalogClient() (*catalog.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.New(cfg.Catalog.BaseURL,
		catalog.WithCountry(cfg.Catalog.Country),
		catalog.WithMaxResults(cfg.Catalog.MaxResults),
		catalog.WithRateLimit(cfg.Catalog.RequestsPerSecond),
	)
}

// browseLogger builds a file-only logger for the interactive browser.
// Writing diagnostics to stderr would corrupt the alternate screen.
func (c *commandContext) browseLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.LogFilePath()
	if path == "" {
		return logging.Discard(), nil
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{path},
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
