package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	QueriesDir string
	Vars       []string
	JSONVars   []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run one gnomAD query",
		Long: `Execute a single query against the gnomAD API and print the
request/response envelope.

String variables are passed with --var; numeric or boolean variables
with --var-json, whose values are parsed as JSON.

Example:
  gnomad-mcp query gene --var gene_symbol=PCSK9 --var dataset=gnomad_r4
  gnomad-mcp query region --var chrom=1 --var reference_genome=GRCh38 \
    --var-json start=55039447 --var-json stop=55064852`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "string variable as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.JSONVars, "var-json", nil, "JSON variable as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.QueriesDir, "queries", "", "directory of query documents (default: embedded)")

	return cmd
}

func runQuery(opts *QueryOptions, name string, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	vars, err := parseVars(opts.Vars, opts.JSONVars)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid variable", err)
	}

	dispatcher := newDispatcher(opts.Endpoint, opts.QueriesDir)
	env := dispatcher.DispatchEnvelope(cmd.Context(), name, vars)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		if err := formatter.Success(env); err != nil {
			return WrapExitError(ExitCommandError, "encode output", err)
		}
	} else {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "encode output", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	// A failed dispatch is folded into the envelope body.
	if msg, ok := env.Response["error"]; ok {
		return NewExitError(ExitFailure, fmt.Sprintf("query failed: %v", msg))
	}
	return nil
}

// parseVars builds the variable map from --var and --var-json pairs.
func parseVars(stringPairs, jsonPairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(stringPairs)+len(jsonPairs))
	for _, pair := range stringPairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		vars[key] = value
	}
	for _, pair := range jsonPairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			return nil, fmt.Errorf("variable %s: %w", key, err)
		}
		vars[key] = parsed
	}
	return vars, nil
}
