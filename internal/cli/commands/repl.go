package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/ulule/pyesql/pkg/adapter"
	"github.com/ulule/pyesql/pkg/binder"
	"github.com/ulule/pyesql/pkg/core"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively invoke queries against the configured target",
		Long: `Start an interactive prompt. Type a query name followed by key=value
parameters to invoke it:

  pyesql> find_users active=true

Dot-commands: .list, .show <name>, .params <name>, .help, .quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cfg, err := configFrom(cmd)
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

	// Project-local history file next to the state database.
	historyFile := filepath.Join(filepath.Dir(cfg.StatePath), "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pyesql> ",
		HistoryFile:     historyFile,
		AutoComplete:    newQueryCompleter(queries),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "pyesql REPL (%d queries loaded)\n", queries.Len())
	_, _ = fmt.Fprintln(w, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(w)

	format := outputFormat(cmd, cfg)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(w, queries, line); quit {
				return nil
			}
			continue
		}

		invokeLine(cmd, binding, line, format)
	}
}

// invokeLine parses "name key=value ..." and executes it.
func invokeLine(cmd *cobra.Command, binding *adapter.Binding, line string, format string) {
	w := cmd.OutOrStdout()
	fields := strings.Fields(line)
	name := fields[0]

	params := make(map[string]any, len(fields)-1)
	for _, pair := range fields[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			_, _ = fmt.Fprintf(w, "invalid parameter %q, expected key=value\n", pair)
			return
		}
		params[key] = value
	}

	res, err := binding.Invoke(cmd.Context(), name, params)
	if err != nil {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	switch outcome := res.(type) {
	case core.ExecResult:
		_, _ = fmt.Fprintf(w, "OK (%d rows affected)\n", outcome.RowsAffected)
	case []map[string]any:
		if err := renderRows(w, outcome, format); err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

// handleDotCommand executes a REPL dot-command; returns true on .quit.
func handleDotCommand(w io.Writer, queries *core.Queries, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".exit":
		return true
	case ".list":
		for _, q := range queries.All() {
			marker := ""
			if q.IsStatement {
				marker = "!"
			}
			_, _ = fmt.Fprintf(w, "%s%s\n", q.Name, marker)
		}
	case ".show":
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(w, "usage: .show <name>")
			return false
		}
		q := queries.Get(fields[1])
		if q == nil {
			_, _ = fmt.Fprintf(w, "unknown query %q\n", fields[1])
			return false
		}
		if q.Doc != "" {
			_, _ = fmt.Fprintf(w, "-- %s\n", strings.ReplaceAll(q.Doc, "\n", "\n-- "))
		}
		_, _ = fmt.Fprintln(w, q.Body)
	case ".params":
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(w, "usage: .params <name>")
			return false
		}
		q := queries.Get(fields[1])
		if q == nil {
			_, _ = fmt.Fprintf(w, "unknown query %q\n", fields[1])
			return false
		}
		names := binder.Parse(q.Body).Names()
		if len(names) == 0 {
			_, _ = fmt.Fprintln(w, "(no parameters)")
			return false
		}
		_, _ = fmt.Fprintln(w, strings.Join(names, " "))
	case ".help":
		_, _ = fmt.Fprintln(w, "  <name> [key=value ...]  invoke a query")
		_, _ = fmt.Fprintln(w, "  .list                   list query names")
		_, _ = fmt.Fprintln(w, "  .show <name>            print a query's doc and body")
		_, _ = fmt.Fprintln(w, "  .params <name>          print a query's parameter names")
		_, _ = fmt.Fprintln(w, "  .quit                   exit")
	default:
		_, _ = fmt.Fprintf(w, "unknown command %s (try .help)\n", fields[0])
	}
	return false
}

// newQueryCompleter completes query names and dot-commands.
func newQueryCompleter(queries *core.Queries) readline.AutoCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".list"),
		readline.PcItem(".show"),
		readline.PcItem(".params"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	}
	for _, name := range queries.Names() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
