package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := Load("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultQueriesDir, cfg.QueriesDir)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultEnv, cfg.Environment)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pyesql.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
queries_dir: sql
environment: prod
target:
  type: sqlite
  path: app.db
environments:
  prod:
    target:
      type: postgres
      host: db.internal
      database: app
`), 0o644))

	cfg, err := Load(cfgPath, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "sql", cfg.QueriesDir)
	assert.Equal(t, cfgPath, GetConfigFileUsed())

	// prod environment overrides the top-level target.
	target := cfg.ResolveTarget()
	require.NotNil(t, target)
	assert.Equal(t, "postgres", target.Type)
	assert.Equal(t, "db.internal", target.Host)
}

func TestLoad_EnvVarsOverrideFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pyesql.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("queries_dir: from_file\n"), 0o644))

	t.Setenv("PYESQL_QUERIES_DIR", "from_env")

	cfg, err := Load(cfgPath, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.QueriesDir)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	ResetConfig()

	t.Setenv("PYESQL_QUERIES_DIR", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("queries-dir", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--queries-dir", "from_flag", "--verbose"}))

	cfg, err := Load("", "", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.QueriesDir)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("queries-dir", "flag_default", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", "", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultQueriesDir, cfg.QueriesDir)
}

func TestLoad_EnvOverrideArgument(t *testing.T) {
	ResetConfig()

	cfg, err := Load("", "staging", nil)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestResolveTarget_FallsBackToTopLevel(t *testing.T) {
	cfg := &Config{
		Environment: "dev",
		Target:      nil,
	}
	assert.Nil(t, cfg.ResolveTarget())
}
