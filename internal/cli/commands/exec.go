package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ulule/pyesql/internal/config"
	"github.com/ulule/pyesql/internal/state"
	"github.com/ulule/pyesql/pkg/adapter"
	"github.com/ulule/pyesql/pkg/core"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <query>",
		Short: "Execute a named query against the configured target",
		Example: `  # Run a row query
  pyesql exec find_users --param active=true

  # Run a statement query
  pyesql exec deactivate_user --param id=42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0])
		},
	}
	cmd.Flags().StringArray("param", nil, "Named parameter as key=value (repeatable)")
	return cmd
}

func runExec(cmd *cobra.Command, name string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	params, err := parseParams(cmd)
	if err != nil {
		return err
	}

	_, queries, err := loadQueries(cfg)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	binding, cleanup, err := connectTarget(cmd.Context(), cfg, queries, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	q := queries.Get(name)
	if q == nil {
		return &adapter.UnknownQueryError{Name: name, Available: queries.Names()}
	}

	run, err := store.StartRun(name, q.IsStatement)
	if err != nil {
		return err
	}

	res, err := binding.Invoke(cmd.Context(), name, params)
	if err != nil {
		_ = store.CompleteRun(run.ID, core.RunFailed, 0, err.Error())
		return err
	}

	w := cmd.OutOrStdout()
	switch outcome := res.(type) {
	case core.ExecResult:
		_ = store.CompleteRun(run.ID, core.RunSuccess, outcome.RowsAffected, "")
		_, _ = fmt.Fprintf(w, "OK (%d rows affected)\n", outcome.RowsAffected)
		return nil
	case []map[string]any:
		_ = store.CompleteRun(run.ID, core.RunSuccess, int64(len(outcome)), "")
		return renderRows(w, outcome, outputFormat(cmd, cfg))
	default:
		return fmt.Errorf("unexpected result type %T", res)
	}
}

// parseParams turns repeated --param key=value flags into a parameter map.
func parseParams(cmd *cobra.Command) (map[string]any, error) {
	pairs, _ := cmd.Flags().GetStringArray("param")
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// connectTarget resolves the configured target, connects its adapter, and
// binds the query set to it.
func connectTarget(ctx context.Context, cfg *config.Config, queries *core.Queries, cmd *cobra.Command) (*adapter.Binding, func(), error) {
	target := cfg.ResolveTarget()
	if target == nil {
		return nil, nil, fmt.Errorf("no target configured: set target in pyesql.yaml")
	}

	logger := loggerFrom(cmd)
	a, err := adapter.New(*target, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Connect(ctx, *target); err != nil {
		return nil, nil, err
	}

	cleanup := func() { _ = a.Close() }
	return adapter.Bind(queries, a, logger), cleanup, nil
}

// openHistory opens (and migrates) the invocation history store.
func openHistory(cfg *config.Config) (*state.Store, error) {
	store := state.NewStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
