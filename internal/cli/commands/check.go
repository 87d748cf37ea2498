package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ulule/pyesql/internal/loader"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse query files and report errors",
		Long: `Parse the given files, or every .sql file under the queries directory,
and report parse errors with their file and line. Exits non-zero when
any file fails to parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		err := filepath.Walk(cfg.QueriesDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") || strings.HasPrefix(info.Name(), ".") {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", cfg.QueriesDir, err)
		}
	}

	w := cmd.OutOrStdout()
	failures := 0
	total := 0
	for _, path := range paths {
		c, err := loader.LoadFile(path)
		if err != nil {
			failures++
			_, _ = fmt.Fprintf(w, "FAIL %v\n", err)
			continue
		}
		total += c.Queries.Len()
		_, _ = fmt.Fprintf(w, "ok   %s (%d queries)\n", path, c.Queries.Len())
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failures, len(paths))
	}
	_, _ = fmt.Fprintf(w, "%d files, %d queries\n", len(paths), total)
	return nil
}
