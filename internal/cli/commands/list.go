package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ulule/pyesql/pkg/binder"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all queries found in the queries directory",
		Example: `  # List all queries
  pyesql list

  # List queries as JSON
  pyesql list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

type queryInfo struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Params []string `json:"params,omitempty"`
	Doc    string   `json:"doc,omitempty"`
	File   string   `json:"file"`
}

func runList(cmd *cobra.Command) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	collections, _, err := loadQueries(cfg)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	var infos []queryInfo
	for _, c := range collections {
		for _, q := range c.Queries.All() {
			kind := "query"
			if q.IsStatement {
				kind = "statement"
			}
			infos = append(infos, queryInfo{
				Name:   q.Name,
				Kind:   kind,
				Params: binder.Parse(q.Body).Names(),
				Doc:    firstLine(q.Doc),
				File:   c.Path,
			})
		}
	}

	w := cmd.OutOrStdout()
	switch outputFormat(cmd, cfg) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		if len(infos) == 0 {
			_, _ = fmt.Fprintln(w, "No queries found.")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"NAME", "KIND", "PARAMS", "DOC", "FILE"})
		for _, info := range infos {
			t.AppendRow(table.Row{
				info.Name,
				info.Kind,
				strings.Join(info.Params, ", "),
				info.Doc,
				info.File,
			})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
