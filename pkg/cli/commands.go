// pkg/cli/commands.go
package cli

import (
	"github.com/spf13/cobra"
)

// NewLoadCmd builds the extract-and-load subcommand.
func NewLoadCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Extract the titles CSV and bulk-load it into netflix_raw",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), opts)
		},
	}
}

// NewTransformCmd builds the in-database transformation subcommand.
func NewTransformCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Run the SQL transformation steps against the loaded data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the transformation statements without executing them")
	return cmd
}

// NewAnalyzeCmd builds the analysis subcommand.
func NewAnalyzeCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the aggregate analyses and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Also write the report as JSON to this path")
	return cmd
}

// NewCheckCmd builds the acceptance check subcommand.
func NewCheckCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the data quality acceptance checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts)
		},
	}
}

// NewRunCmd builds the full pipeline subcommand.
func NewRunCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: load, transform, check, analyze",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Write the run summary as JSON to this path (overrides RUN_REPORT_PATH)")
	return cmd
}
