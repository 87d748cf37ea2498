package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulule/pyesql/internal/config"

	_ "github.com/ulule/pyesql/pkg/adapters/sqlite"
)

// newProject lays out a minimal project: a queries directory and a
// pyesql.yaml pointing at an in-memory sqlite target.
func newProject(t *testing.T) (cfgPath, queriesDir string) {
	t.Helper()

	dir := t.TempDir()
	queriesDir = filepath.Join(dir, "queries")
	require.NoError(t, os.MkdirAll(queriesDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(queriesDir, "demo.sql"), []byte(`-- name: one
-- Returns the number one.
SELECT 1 AS one

-- name: make_table!
CREATE TABLE scratch (id INTEGER)
`), 0o644))

	cfgPath = filepath.Join(dir, "pyesql.yaml")
	cfg := `queries_dir: ` + queriesDir + `
state_path: state/history.db
target:
  type: sqlite
  path: ":memory:"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, queriesDir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_List(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "make_table")
	assert.Contains(t, out, "statement")
}

func TestCLI_ListJSON(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "list", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "one"`)
	assert.Contains(t, out, `"kind": "statement"`)
}

func TestCLI_Check(t *testing.T) {
	cfgPath, queriesDir := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "2 queries")

	// A broken file makes check fail and name the offending line.
	require.NoError(t, os.WriteFile(filepath.Join(queriesDir, "broken.sql"),
		[]byte("SELECT with no header\n"), 0o644))

	out, err = runCLI(t, "--config", cfgPath, "check")
	require.Error(t, err)
	assert.Contains(t, out, "broken.sql")
	assert.Contains(t, out, "line 1")
}

func TestCLI_ExecRowQuery(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "exec", "one", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"one": 1`)
}

func TestCLI_ExecStatement(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "exec", "make_table")
	require.NoError(t, err)
	assert.Contains(t, out, "rows affected")
}

func TestCLI_ExecUnknownQuery(t *testing.T) {
	cfgPath, _ := newProject(t)

	_, err := runCLI(t, "--config", cfgPath, "exec", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown query "nope"`)
}

func TestCLI_ExecRecordsHistory(t *testing.T) {
	cfgPath, _ := newProject(t)

	_, err := runCLI(t, "--config", cfgPath, "exec", "one")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "success")
}

func TestCLI_DocsMarkdown(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "## one")
	assert.Contains(t, out, "Returns the number one.")
	assert.Contains(t, out, "```sql")
}

func TestCLI_DocsYAML(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "docs", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: one")
	assert.Contains(t, out, "kind: statement")
}

func TestCLI_Version(t *testing.T) {
	cfgPath, _ := newProject(t)

	out, err := runCLI(t, "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pyesql v")
}
