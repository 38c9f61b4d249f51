package config

const (
	defaultBackendBaseURL     = "http://localhost:3000/api"
	defaultCatalogBaseURL     = "https://www.googleapis.com/books/v1"
	defaultCatalogRPS         = 2
	defaultCatalogMaxResults  = 20
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/folio/logs"
	defaultStateDir           = "~/.local/share/folio"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			BaseURL: defaultBackendBaseURL,
		},
		Catalog: Catalog{
			BaseURL:           defaultCatalogBaseURL,
			RequestsPerSecond: defaultCatalogRPS,
			MaxResults:        defaultCatalogMaxResults,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
	}
}
