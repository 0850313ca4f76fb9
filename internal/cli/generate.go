package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/genelab/gnomad-mcp/internal/introspection"
	"github.com/genelab/gnomad-mcp/internal/querygen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	SchemaPath string
	OutDir     string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate query documents from a schema snapshot",
		Long: `Walk a saved schema snapshot and synthesize one full-depth GraphQL
query document per top-level query field.

Example:
  gnomad-mcp generate --schema gnomad_schema.json --out ./generated`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SchemaPath, "schema", introspection.SnapshotFile, "path to schema snapshot")
	cmd.Flags().StringVar(&opts.OutDir, "out", "generated", "output directory for query documents")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	snapshot, err := introspection.Load(opts.SchemaPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load snapshot", err)
	}

	docs, order, err := querygen.GenerateAll(&snapshot.Schema, slog.Default())
	if err != nil {
		return WrapExitError(ExitFailure, "query generation failed", err)
	}

	files, err := querygen.WriteDocuments(docs, order, opts.OutDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write documents", err)
	}

	slog.Info("documents written", "count", len(files), "dir", opts.OutDir)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.Success(map[string]any{
		"documents": len(files),
		"out_dir":   opts.OutDir,
	})
}
