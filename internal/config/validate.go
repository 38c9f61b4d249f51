package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBackend() error {
	if c.Backend.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/folio/config.toml"
		}
		return fmt.Errorf("backend.base_url is required. Set FOLIO_BACKEND_URL env var or edit %s (create with 'folio config init')", defaultPath)
	}
	return validateHTTPURL("backend.base_url", c.Backend.BaseURL)
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL("catalog.base_url", c.Catalog.BaseURL); err != nil {
		return err
	}
	if country := c.Catalog.Country; country != "" && len(country) != 2 {
		return errors.New("catalog.country must be a two-letter country code")
	}
	if c.Catalog.MaxResults > 40 {
		// Google Books caps maxResults at 40 per request.
		return errors.New("catalog.max_results must be at most 40")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateHTTPURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL", field)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}
