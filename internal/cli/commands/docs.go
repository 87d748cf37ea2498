package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ulule/pyesql/pkg/binder"
)

// NewDocsCommand creates the docs command.
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Render query documentation",
		Long:  `Render the documentation of every query as Markdown or YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd)
		},
	}
	cmd.Flags().String("format", "markdown", "Documentation format: markdown, yaml")
	return cmd
}

type queryDoc struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Doc    string   `yaml:"doc,omitempty"`
	Params []string `yaml:"params,omitempty"`
	Body   string   `yaml:"body"`
	File   string   `yaml:"file"`
}

func runDocs(cmd *cobra.Command) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	collections, _, err := loadQueries(cfg)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	var docs []queryDoc
	for _, c := range collections {
		for _, q := range c.Queries.All() {
			kind := "query"
			if q.IsStatement {
				kind = "statement"
			}
			docs = append(docs, queryDoc{
				Name:   q.Name,
				Kind:   kind,
				Doc:    q.Doc,
				Params: binder.Parse(q.Body).Names(),
				Body:   q.Body,
				File:   c.Path,
			})
		}
	}

	w := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml":
		return yaml.NewEncoder(w).Encode(docs)
	default:
		for _, d := range docs {
			_, _ = fmt.Fprintf(w, "## %s\n\n", d.Name)
			if d.Kind == "statement" {
				_, _ = fmt.Fprintln(w, "*Statement query: returns no rows.*")
				_, _ = fmt.Fprintln(w)
			}
			if d.Doc != "" {
				_, _ = fmt.Fprintf(w, "%s\n\n", d.Doc)
			}
			if len(d.Params) > 0 {
				_, _ = fmt.Fprintf(w, "Parameters: `%s`\n\n", strings.Join(d.Params, "`, `"))
			}
			_, _ = fmt.Fprintf(w, "```sql\n%s\n```\n\n", d.Body)
		}
		return nil
	}
}
