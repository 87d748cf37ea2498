package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "pyesql v%s\n", version)
			if buildDate != "unknown" {
				_, _ = fmt.Fprintf(w, "built %s", buildDate)
				if gitCommit != "unknown" {
					_, _ = fmt.Fprintf(w, " (%s)", gitCommit)
				}
				_, _ = fmt.Fprintln(w)
			}
		},
	}
}
