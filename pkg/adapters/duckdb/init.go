// Package duckdb provides a DuckDB adapter for pyesql.
//
// This file registers the DuckDB adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/ulule/pyesql/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/ulule/pyesql/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
