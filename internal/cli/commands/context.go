// Package commands implements the pyesql subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ulule/pyesql/internal/config"
	"github.com/ulule/pyesql/internal/loader"
	"github.com/ulule/pyesql/pkg/core"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig stores the loaded config in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the CLI logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// configFrom retrieves the config placed in the command context by the
// root command.
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

func loggerFrom(cmd *cobra.Command) *slog.Logger {
	if logger, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// loadQueries loads and merges every query file under the configured
// directory.
func loadQueries(cfg *config.Config) ([]*loader.Collection, *core.Queries, error) {
	collections, err := loader.LoadDir(cfg.QueriesDir)
	if err != nil {
		return nil, nil, err
	}
	return collections, loader.MergeQueries(collections), nil
}

// outputFormat resolves the output format: the --output flag wins over
// the configured default.
func outputFormat(cmd *cobra.Command, cfg *config.Config) string {
	if f, _ := cmd.Flags().GetString("output"); f != "" {
		return f
	}
	if cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return config.DefaultOutput
}
