// Package config provides configuration management for the pyesql CLI.
//
// Settings come from four layers, highest priority first: command-line
// flags, PYESQL_* environment variables, a pyesql.yaml file, and built-in
// defaults.
package config

import "github.com/ulule/pyesql/pkg/core"

// EnvConfig holds per-environment overrides.
type EnvConfig struct {
	Target *core.AdapterConfig `koanf:"target"`
}

// Config holds all CLI configuration options.
type Config struct {
	// QueriesDir is the directory scanned for annotated .sql files.
	QueriesDir string `koanf:"queries_dir"`

	// StatePath is the sqlite file recording invocation history.
	StatePath string `koanf:"state_path"`

	Environment  string `koanf:"environment"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// Target is the database queries are executed against.
	Target *core.AdapterConfig `koanf:"target"`

	// Environments maps environment names to their overrides; the active
	// one is selected by Environment or the --env flag.
	Environments map[string]EnvConfig `koanf:"environments"`
}

// Defaults
const (
	DefaultQueriesDir = "queries"
	DefaultStateFile  = ".pyesql/state.db"
	DefaultEnv        = "dev"
	DefaultOutput     = "table"
)

// ResolveTarget returns the adapter config for the active environment,
// falling back to the top-level target.
func (c *Config) ResolveTarget() *core.AdapterConfig {
	if env, ok := c.Environments[c.Environment]; ok && env.Target != nil {
		return env.Target
	}
	return c.Target
}
