package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/genelab/gnomad-mcp/internal/batch"
	"github.com/genelab/gnomad-mcp/internal/store"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	QueriesDir string
	OutDir     string
	Database   string
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <params.yaml>",
		Short: "Run a parameter file of queries",
		Long: `Execute every query in a YAML parameter file, writing one envelope
JSON file per record under the output directory, grouped by resolved
gnomAD version.

With --db, envelopes are also archived in a SQLite database keyed by
run ID.

Example:
  gnomad-mcp batch params.yaml --out ./results
  gnomad-mcp batch params.yaml --out ./results --db archive.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out", "results", "output directory for envelope files")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite archive (optional)")
	cmd.Flags().StringVar(&opts.QueriesDir, "queries", "", "directory of query documents (default: embedded)")

	return cmd
}

func runBatch(opts *BatchOptions, paramsPath string, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	params, err := batch.LoadParams(paramsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load params", err)
	}

	var archive *store.Store
	if opts.Database != "" {
		slog.Info("opening archive", "path", opts.Database)
		archive, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open archive", err)
		}
		defer func() {
			if closeErr := archive.Close(); closeErr != nil {
				slog.Error("error closing archive", "error", closeErr)
			}
		}()
	}

	runner := batch.NewRunner(newDispatcher(opts.Endpoint, opts.QueriesDir), archive, slog.Default())
	summary, err := runner.Run(cmd.Context(), params, opts.OutDir)
	if err != nil {
		return WrapExitError(ExitFailure, "batch run failed", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	type recordResult struct {
		Query  string `json:"query"`
		Output string `json:"output,omitempty"`
		Error  string `json:"error,omitempty"`
	}
	result := struct {
		RunID   string         `json:"run_id"`
		Records int            `json:"records"`
		Failed  int            `json:"failed"`
		Results []recordResult `json:"results"`
	}{
		RunID:   summary.RunID,
		Records: len(summary.Outcomes),
		Failed:  summary.Failed(),
	}
	for _, o := range summary.Outcomes {
		rr := recordResult{Query: o.Record.Query, Output: o.Path}
		if o.Err != nil {
			rr.Error = o.Err.Error()
		}
		result.Results = append(result.Results, rr)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return WrapExitError(ExitCommandError, "encode output", err)
		}
	} else {
		for _, rr := range result.Results {
			if rr.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", rr.Query, rr.Error)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s -> %s\n", rr.Query, rr.Output)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d records, %d failed\n",
			result.RunID, result.Records, result.Failed)
	}

	if summary.Failed() > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d records failed", summary.Failed(), len(summary.Outcomes)))
	}
	return nil
}
