// Package adapter defines the database adapter contract and the binding
// that turns a parsed query set into invocable operations.
//
// Concrete adapter implementations live in pkg/adapters/ subdirectories
// and register themselves via init(); import them with a blank identifier:
//
//	import _ "github.com/ulule/pyesql/pkg/adapters/sqlite"
package adapter

import (
	"context"
	"database/sql"

	"github.com/ulule/pyesql/pkg/core"
)

// Adapter is the execution context queries are bound to.
type Adapter interface {
	// Connect establishes the database connection described by cfg.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close releases the connection.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Query runs a statement that returns rows.
	Query(ctx context.Context, query string, args ...any) (*core.Rows, error)

	// Placeholder formats the driver placeholder for the 1-based
	// argument position n ("?" or "$n").
	Placeholder(n int) string
}
