// Package sqlite provides a SQLite adapter for pyesql.
//
// This file registers the SQLite adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/ulule/pyesql/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/ulule/pyesql/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
