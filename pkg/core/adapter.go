package core

import "database/sql"

// AdapterConfig holds connection settings for a database adapter.
type AdapterConfig struct {
	// Type selects the adapter: "postgres", "duckdb", "sqlite".
	Type string `koanf:"type"`

	// Host and Port apply to network databases.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Database is the database name for network databases.
	Database string `koanf:"database"`

	// Path is the database file for embedded databases. Empty or
	// ":memory:" selects an in-memory database.
	Path string `koanf:"path"`

	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// Options holds driver-specific settings (e.g. sslmode for postgres).
	Options map[string]string `koanf:"options"`
}

// Rows wraps *sql.Rows so adapter consumers don't import database/sql.
type Rows struct {
	*sql.Rows
}

// ExecResult is the outcome of invoking a statement query.
type ExecResult struct {
	// RowsAffected is -1 when the driver does not report it.
	RowsAffected int64
}
