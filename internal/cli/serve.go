package cli

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/genelab/gnomad-mcp/internal/tools"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	QueriesDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve gnomAD tools over MCP stdio",
		Long: `Start the MCP server on stdin/stdout.

Each gnomAD query is exposed as a tool; responses carry the full
request/response envelope as JSON text.

Example:
  gnomad-mcp serve
  gnomad-mcp serve --queries ./queries --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.QueriesDir, "queries", "", "directory of query documents (default: embedded)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	setupLogging(opts.Verbose)

	deps := &tools.Deps{
		Dispatcher: newDispatcher(opts.Endpoint, opts.QueriesDir),
	}
	s := tools.NewServer(deps)

	slog.Info("mcp server starting", "endpoint", opts.Endpoint)
	if err := server.ServeStdio(s); err != nil {
		return WrapExitError(ExitFailure, "mcp server error", err)
	}

	slog.Info("mcp server stopped")
	return nil
}
