package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent query invocations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"STARTED", "QUERY", "KIND", "STATUS", "ROWS", "DURATION"})
	for _, run := range runs {
		kind := "query"
		if run.Statement {
			kind = "statement"
		}
		duration := ""
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Query,
			kind,
			string(run.Status),
			run.RowCount,
			duration,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
