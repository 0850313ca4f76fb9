package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/genelab/gnomad-mcp/internal/gnomad"
	"github.com/genelab/gnomad-mcp/internal/introspection"
)

// FetchSchemaOptions holds flags for the fetch-schema command.
type FetchSchemaOptions struct {
	*RootOptions
	OutDir string
}

// NewFetchSchemaCommand creates the fetch-schema command.
func NewFetchSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FetchSchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fetch-schema",
		Short: "Fetch the gnomAD GraphQL schema",
		Long: `Run the standard introspection query against the gnomAD API and
save the schema snapshot alongside a fetch log.

Example:
  gnomad-mcp fetch-schema --out ./schema`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetchSchema(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "output directory for the snapshot")

	return cmd
}

func runFetchSchema(opts *FetchSchemaOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	client := gnomad.NewClient(opts.Endpoint)
	slog.Info("fetching schema", "endpoint", client.Endpoint())

	snapshot, err := introspection.Fetch(cmd.Context(), client, client.Endpoint())
	if err != nil {
		return WrapExitError(ExitFailure, "introspection failed", err)
	}

	path, err := introspection.Save(snapshot, opts.OutDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to save snapshot", err)
	}

	slog.Info("schema saved", "path", path, "types", len(snapshot.Schema.Types))
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.Success(map[string]any{
		"output_file": path,
		"types":       len(snapshot.Schema.Types),
		"fetched_at":  snapshot.Metadata.FetchedAt,
	})
}
