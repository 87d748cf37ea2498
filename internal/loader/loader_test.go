package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulule/pyesql/internal/testutil"
	"github.com/ulule/pyesql/pkg/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.sql", "-- name: all_users\nSELECT * FROM users\n")

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "users", c.Name)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, []string{"all_users"}, c.Queries.Names())
}

func TestLoadFile_ParseErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.sql", "SELECT 1\n")

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.sql", "-- name: from_b\nSELECT 1\n")
	writeFile(t, dir, "nested/a.sql", "-- name: from_a\nSELECT 2\n")
	writeFile(t, dir, ".hidden.sql", "not even parsed")
	writeFile(t, dir, "notes.txt", "ignored")

	collections, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, collections, 2)

	// Path order is deterministic.
	assert.Equal(t, "b", collections[0].Name)
	assert.Equal(t, "a", collections[1].Name)

	merged := MergeQueries(collections)
	assert.Equal(t, []string{"from_b", "from_a"}, merged.Names())
}

func TestLoadDir_FirstErrorAborts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.sql", "-- name: ok\nSELECT 1\n")
	writeFile(t, dir, "bad.sql", "no header here\n")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.sql")
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.sql", "-- name: one\nSELECT 1\n")
	writeFile(t, dir, "two.sql", "-- name: two\nSELECT 2\n")

	collections, err := LoadGlob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	assert.Len(t, collections, 2)
}

func TestMergeQueries_LastFileWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sql", "-- name: dup\nSELECT 'a'\n")
	writeFile(t, dir, "z.sql", "-- name: dup\nSELECT 'z'\n")

	collections, err := LoadDir(dir)
	require.NoError(t, err)

	merged := MergeQueries(collections)
	require.Equal(t, 1, merged.Len())
	assert.Equal(t, "SELECT 'z'", merged.Get("dup").Body)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "q.sql", "-- name: first\nSELECT 1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan []*Collection, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, testutil.NewTestLogger(t), func(cs []*Collection) {
			select {
			case reloaded <- cs:
			default:
			}
		}, nil)
	}()

	// Give the watcher a moment to install before writing.
	time.Sleep(200 * time.Millisecond)
	writeFile(t, dir, "q.sql", "-- name: second\nSELECT 2\n")

	select {
	case cs := <-reloaded:
		merged := MergeQueries(cs)
		assert.True(t, merged.Has("second"))
	case <-ctx.Done():
		t.Fatal("watcher never reloaded")
	}

	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
