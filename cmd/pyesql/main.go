// Command pyesql loads annotated SQL query files and exposes each query
// as a named, documented operation against a configured database.
package main

import (
	"github.com/ulule/pyesql/internal/cli"

	// Register the built-in adapters.
	_ "github.com/ulule/pyesql/pkg/adapters/duckdb"
	_ "github.com/ulule/pyesql/pkg/adapters/postgres"
	_ "github.com/ulule/pyesql/pkg/adapters/sqlite"
)

func main() {
	cli.Execute()
}
