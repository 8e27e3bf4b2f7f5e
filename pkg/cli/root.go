// pkg/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

// Options carries the flag overrides shared across subcommands.
type Options struct {
	CSVPath    string
	Limit      int
	ReportPath string
	DryRun     bool
}

// NewRootCmd builds the command tree. Configuration is loaded from the
// environment when a subcommand runs; flags override the fields they name.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "netflix-elt",
		Short: "ELT pipeline for the Netflix titles catalog",
		Long: `netflix-elt loads the Netflix titles CSV into PostgreSQL, transforms it
in the database (deduplication, type coercion, normalization), verifies the
result with acceptance checks, and reports aggregate analyses.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.CSVPath, "csv", "", "Path to the titles CSV (overrides NETFLIX_CSV_PATH)")
	rootCmd.PersistentFlags().IntVar(&opts.Limit, "limit", 0, "Load at most this many rows (0 means all)")

	rootCmd.AddCommand(
		NewLoadCmd(opts),
		NewTransformCmd(opts),
		NewAnalyzeCmd(opts),
		NewCheckCmd(opts),
		NewRunCmd(opts),
	)

	return rootCmd
}
