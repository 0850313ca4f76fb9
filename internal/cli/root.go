package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/genelab/gnomad-mcp/internal/dispatch"
	"github.com/genelab/gnomad-mcp/internal/docstore"
	"github.com/genelab/gnomad-mcp/internal/gnomad"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Endpoint string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gnomad-mcp CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gnomad-mcp",
		Short: "gnomAD query tools over MCP",
		Long: `Query the gnomAD GraphQL API through version-aware query documents,
exposed as MCP tools or run directly from the command line.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", gnomad.DefaultEndpoint, "gnomAD GraphQL endpoint")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewFetchSchemaCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setupLogging configures the default slog logger on stderr.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// newDispatcher wires a dispatcher against the configured endpoint.
// An empty queriesDir selects the embedded query documents.
func newDispatcher(endpoint, queriesDir string) *dispatch.Dispatcher {
	client := gnomad.NewClient(endpoint)
	var docs docstore.Store = docstore.Embedded{}
	if queriesDir != "" {
		docs = docstore.Dir(queriesDir)
	}
	return dispatch.New(docs, client, client.Endpoint())
}
