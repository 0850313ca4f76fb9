package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genelab/gnomad-mcp/internal/dispatch"
	"github.com/genelab/gnomad-mcp/internal/registry"
)

type stubStore struct{}

func (stubStore) Document(v registry.Version, name string) (string, error) {
	return "query " + name + " { _ }", nil
}

type countingExecutor struct {
	calls     int
	document  string
	variables map[string]any
}

func (e *countingExecutor) Execute(_ context.Context, document string, vars map[string]any) (map[string]any, error) {
	e.calls++
	e.document = document
	e.variables = vars
	return map[string]any{"ok": true}, nil
}

func newTestDeps(exec *countingExecutor) *Deps {
	return &Deps{
		Dispatcher: dispatch.New(stubStore{}, exec, "https://example.test/api"),
	}
}

func call(t *testing.T, deps *Deps, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	for _, st := range All(deps) {
		if st.Tool.Name == name {
			handler = st.Handler
			break
		}
	}
	require.NotNil(t, handler, "no tool named %s", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) dispatch.Envelope {
	t.Helper()
	var env dispatch.Envelope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &env))
	return env
}

func TestAll_ToolNamesAndOrder(t *testing.T) {
	deps := newTestDeps(&countingExecutor{})
	var names []string
	for _, st := range All(deps) {
		names = append(names, st.Tool.Name)
	}
	assert.Equal(t, []string{
		"get_gene_info",
		"search_for_genes",
		"get_region_info",
		"get_variant_info",
		"get_clinvar_variant_info",
		"get_mitochondrial_variant_info",
		"get_structural_variant_info",
		"get_copy_number_variant_info",
		"search_for_variants",
		"get_str_info",
		"get_variant_liftover",
		"get_metadata",
	}, names)
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer(newTestDeps(&countingExecutor{}))
	require.NotNil(t, s)
}

func TestGeneInfo_BySymbol(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_gene_info", map[string]any{
		"gene_symbol": "PCSK9",
	})

	assert.False(t, result.IsError)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "query gene { _ }", exec.document)
	assert.Equal(t, "PCSK9", exec.variables["gene_symbol"])
	assert.Equal(t, "gnomad_r4", exec.variables["dataset"])
	assert.Equal(t, "GRCh38", exec.variables["reference_genome"])
	assert.NotContains(t, exec.variables, "gene_id")

	env := decodeEnvelope(t, result)
	assert.Equal(t, "https://example.test/api", env.Endpoint)
	assert.Equal(t, "gene", env.RequestQuery)
	assert.Equal(t, map[string]any{"ok": true}, env.Response)
}

func TestGeneInfo_RejectsBeforeDispatch(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "neither identifier",
			args: map[string]any{},
			want: "Either gene_id or gene_symbol",
		},
		{
			name: "non v4 dataset",
			args: map[string]any{"gene_symbol": "PCSK9", "dataset": "gnomad_r2_1"},
			want: "gnomad_r4",
		},
		{
			name: "non GRCh38 build",
			args: map[string]any{"gene_symbol": "PCSK9", "reference_genome": "GRCh37"},
			want: "GRCh38",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &countingExecutor{}
			result := call(t, newTestDeps(exec), "get_gene_info", tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
			assert.Zero(t, exec.calls, "validation failure must not reach the executor")
		})
	}
}

func TestRegionInfo_PassesCoordinates(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_region_info", map[string]any{
		"chrom":            "1",
		"start":            55039447,
		"stop":             55064852,
		"reference_genome": "GRCh38",
	})

	assert.False(t, result.IsError)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "1", exec.variables["chrom"])
	assert.Equal(t, 55039447, exec.variables["start"])
	assert.Equal(t, 55064852, exec.variables["stop"])
}

func TestRegionInfo_RequiresGRCh38(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_region_info", map[string]any{
		"chrom":            "1",
		"start":            100,
		"stop":             200,
		"reference_genome": "GRCh37",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)
}

func TestVariantInfo_MissingRequired(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_variant_info", map[string]any{
		"dataset":          "gnomad_r4",
		"reference_genome": "GRCh38",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)
}

func TestVariantInfo_Dispatches(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_variant_info", map[string]any{
		"variantId":        "1-55051215-G-GA",
		"dataset":          "gnomad_r4",
		"reference_genome": "GRCh38",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "query variant { _ }", exec.document)
	assert.Equal(t, "1-55051215-G-GA", exec.variables["variantId"])
}

func TestMitochondrialVariant_V4Only(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_mitochondrial_variant_info", map[string]any{
		"variant_id":       "M-8602-T-C",
		"reference_genome": "GRCh38",
		"dataset":          "gnomad_r3",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)
}

func TestCopyNumberVariant_DefaultDataset(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_copy_number_variant_info", map[string]any{
		"variantId":        "1__DUP__1",
		"reference_genome": "GRCh38",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "gnomad_cnv_r4", exec.variables["dataset"])
	assert.Equal(t, "query copy_number_variant { _ }", exec.document)
}

func TestCopyNumberVariant_RejectsOtherDatasets(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_copy_number_variant_info", map[string]any{
		"variantId":        "1__DUP__1",
		"reference_genome": "GRCh38",
		"dataset":          "gnomad_r4",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "gnomad_cnv_r4")
	assert.Zero(t, exec.calls)
}

func TestSTRInfo_V4Only(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_str_info", map[string]any{
		"id":               "ATXN1",
		"reference_genome": "GRCh38",
		"dataset":          "gnomad_r2_1",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)

	result = call(t, newTestDeps(exec), "get_str_info", map[string]any{
		"id":               "ATXN1",
		"reference_genome": "GRCh38",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "ATXN1", exec.variables["id"])
}

func TestLiftover_ExactlyOneIdentifier(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "neither",
			args: map[string]any{"reference_genome": "GRCh37"},
		},
		{
			name: "both",
			args: map[string]any{
				"reference_genome":    "GRCh37",
				"source_variant_id":   "1-55505647-G-T",
				"liftover_variant_id": "1-55039974-G-T",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &countingExecutor{}
			result := call(t, newTestDeps(exec), "get_variant_liftover", tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "Exactly one")
			assert.Zero(t, exec.calls)
		})
	}
}

func TestLiftover_BuildMustMatchIdentifier(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_variant_liftover", map[string]any{
		"source_variant_id": "1-55505647-G-T",
		"reference_genome":  "GRCh38",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)

	result = call(t, newTestDeps(exec), "get_variant_liftover", map[string]any{
		"liftover_variant_id": "1-55039974-G-T",
		"reference_genome":    "GRCh37",
	})
	assert.True(t, result.IsError)
	assert.Zero(t, exec.calls)
}

func TestLiftover_Dispatches(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_variant_liftover", map[string]any{
		"source_variant_id": "1-55505647-G-T",
		"reference_genome":  "GRCh37",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "query liftover { _ }", exec.document)
	assert.Equal(t, "gnomad_r2_1", exec.variables["dataset"])
	assert.NotContains(t, exec.variables, "liftover_variant_id")
}

func TestMetadata_Dispatches(t *testing.T) {
	exec := &countingExecutor{}
	result := call(t, newTestDeps(exec), "get_metadata", map[string]any{
		"dataset":          "gnomad_r3",
		"reference_genome": "GRCh38",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "query meta { _ }", exec.document)

	env := decodeEnvelope(t, result)
	assert.Equal(t, "gnomad_r3", env.RequestVariables["dataset"])
}

func TestSearchTools_RequireQuery(t *testing.T) {
	for _, name := range []string{"search_for_genes", "search_for_variants"} {
		t.Run(name, func(t *testing.T) {
			exec := &countingExecutor{}
			result := call(t, newTestDeps(exec), name, map[string]any{
				"dataset":          "gnomad_r4",
				"reference_genome": "GRCh38",
			})
			assert.True(t, result.IsError)
			assert.Zero(t, exec.calls)
		})
	}
}
