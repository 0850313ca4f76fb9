package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genelab/gnomad-mcp/internal/gnomad"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gnomad-mcp", cmd.Use)
	assert.Contains(t, cmd.Long, "gnomAD")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"serve", "query", "batch", "fetch-schema", "generate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	endpointFlag := cmd.PersistentFlags().Lookup("endpoint")
	require.NotNil(t, endpointFlag)
	assert.Equal(t, gnomad.DefaultEndpoint, endpointFlag.DefValue)
}

func TestQueryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	queryCmd, _, err := cmd.Find([]string{"query"})
	require.NoError(t, err)

	require.NotNil(t, queryCmd.Flags().Lookup("var"))
	require.NotNil(t, queryCmd.Flags().Lookup("var-json"))
	require.NotNil(t, queryCmd.Flags().Lookup("queries"))
}

func TestBatchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	batchCmd, _, err := cmd.Find([]string{"batch"})
	require.NoError(t, err)

	outFlag := batchCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "results", outFlag.DefValue)

	dbFlag := batchCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is optional, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestFetchSchemaCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	fetchCmd, _, err := cmd.Find([]string{"fetch-schema"})
	require.NoError(t, err)

	outFlag := fetchCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, ".", outFlag.DefValue)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	require.NotNil(t, genCmd.Flags().Lookup("schema"))
	require.NotNil(t, genCmd.Flags().Lookup("out"))
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "generate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
