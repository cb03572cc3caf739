// Package config loads gridbook settings from environment variables.
// Every field has a default except where noted, and Load validates the whole
// configuration so a misconfigured server fails at startup.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/gridbook/internal/table"
)

// QuoteNone disables quoting when used as CSV_QUOTE.
const QuoteNone = "none"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Reader   ReaderConfig
	Catalog  CatalogConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds the optional PostgreSQL source used by query imports.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty disables query imports.
	// Supports both DATABASE_URL and DB_URL.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of open connections (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// QueryTimeout bounds a single import query (default: 30s)
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" default:"30s"`
}

// Enabled reports whether a database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ReaderConfig holds the default dialect and table layout for imports.
type ReaderConfig struct {
	// Delimiter separates fields (default: ,)
	Delimiter string `env:"CSV_DELIMITER" default:","`

	// Quote lists the quote characters; "none" disables quoting (default: ")
	Quote string `env:"CSV_QUOTE" default:"\""`

	// Encoding is the input charset: utf-8, latin1, windows-1252, ... (default: utf-8)
	Encoding string `env:"CSV_ENCODING" default:"utf-8"`

	// SkipHeader is the number of rows above the column row (default: 0)
	SkipHeader int `env:"TABLE_SKIP_HEADER" default:"0"`

	// SkipTrailer is the number of rows between columns and data (default: 0)
	SkipTrailer int `env:"TABLE_SKIP_TRAILER" default:"0"`

	// SkipFooter is the number of rows after the data (default: 0)
	SkipFooter int `env:"TABLE_SKIP_FOOTER" default:"0"`

	// Class selects the table layout (default: Spreadsheet)
	Class string `env:"TABLE_CLASS" default:"Spreadsheet"`
}

// QuoteChars returns the quote characters for the tokenizer, "" when
// quoting is disabled.
func (c *ReaderConfig) QuoteChars() string {
	if strings.EqualFold(c.Quote, QuoteNone) {
		return ""
	}
	return c.Quote
}

// Params returns the table parameters described by the configuration.
func (c *ReaderConfig) Params() table.Parameters {
	return table.Parameters{
		table.ParamHeader:  strconv.Itoa(c.SkipHeader),
		table.ParamTrailer: strconv.Itoa(c.SkipTrailer),
		table.ParamFooter:  strconv.Itoa(c.SkipFooter),
		table.ParamClass:   c.Class,
	}
}

// CatalogConfig holds the books served by the HTTP server.
type CatalogConfig struct {
	// BookDir is loaded as one book at startup when set.
	BookDir string `env:"BOOK_DIR"`

	// BookPattern selects files in BookDir (default: *.csv)
	BookPattern string `env:"BOOK_PATTERN" default:"*.csv"`

	// MaxUploadSize is the maximum multipart upload size in bytes (default: 32MB)
	MaxUploadSize int64 `env:"UPLOAD_MAX_SIZE" default:"33554432"`

	// MaxConcurrentImports bounds uploads and queries parsed at once (default: 4)
	MaxConcurrentImports int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// ImportWait is how long an import waits for a free slot (default: 10s)
	ImportWait time.Duration `env:"IMPORT_MAX_WAIT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
