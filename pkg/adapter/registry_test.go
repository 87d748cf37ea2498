package adapter

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulule/pyesql/pkg/core"
)

type stubAdapter struct {
	BaseSQLAdapter
}

func (s *stubAdapter) Connect(_ context.Context, cfg core.AdapterConfig) error {
	s.Cfg = cfg
	return nil
}

func (s *stubAdapter) Placeholder(int) string { return "?" }

func TestRegistry_RegisterAndNew(t *testing.T) {
	Register("stub", func(logger *slog.Logger) Adapter {
		return &stubAdapter{BaseSQLAdapter: BaseSQLAdapter{Logger: logger}}
	})

	assert.True(t, IsRegistered("stub"))
	assert.Contains(t, List(), "stub")

	a, err := New(core.AdapterConfig{Type: "stub"}, nil)
	require.NoError(t, err)
	require.IsType(t, &stubAdapter{}, a)
}

func TestRegistry_UnknownType(t *testing.T) {
	_, err := New(core.AdapterConfig{Type: "no-such-db"}, nil)
	require.Error(t, err)

	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no-such-db", unknown.Type)
}

func TestRegistry_EmptyType(t *testing.T) {
	_, err := New(core.AdapterConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adapter type not specified")
}
