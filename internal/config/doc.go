// Package config loads, normalizes, and validates folio configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FOLIO_BACKEND_URL. The Config type centralizes every knob the CLI and the
// interactive browser need: the persistence backend address, the external
// book catalog, log output, and local state directories.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
