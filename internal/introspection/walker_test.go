package introspection

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) TypeRef {
	return TypeRef{Kind: "OBJECT", Name: name}
}

func scalar(name string) TypeRef {
	return TypeRef{Kind: "SCALAR", Name: name}
}

func nonNull(of TypeRef) TypeRef {
	return TypeRef{Kind: "NON_NULL", OfType: &of}
}

func list(of TypeRef) TypeRef {
	return TypeRef{Kind: "LIST", OfType: &of}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSchema builds a small gene-shaped schema with a type cycle:
// Gene.transcripts -> Transcript, Transcript.gene -> Gene.
func testSchema() *Schema {
	return &Schema{
		QueryType: &Type{
			Kind: "OBJECT",
			Name: "Query",
			Fields: []Field{
				{
					Name: "gene",
					Args: []InputValue{
						{Name: "gene_id", Type: scalar("String")},
						{Name: "reference_genome", Type: nonNull(named("ReferenceGenomeId"))},
					},
					Type: named("Gene"),
				},
				{
					Name: "meta",
					Type: named("Meta"),
				},
			},
		},
		Types: []Type{
			{
				Kind: "OBJECT",
				Name: "Gene",
				Fields: []Field{
					{Name: "gene_id", Type: nonNull(scalar("String"))},
					{Name: "symbol", Description: "HGNC symbol", Type: scalar("String")},
					{Name: "transcripts", Type: list(named("Transcript"))},
				},
			},
			{
				Kind: "OBJECT",
				Name: "Transcript",
				Fields: []Field{
					{Name: "transcript_id", Type: nonNull(scalar("String"))},
					{Name: "gene", Type: named("Gene")},
				},
			},
			{
				Kind: "OBJECT",
				Name: "Meta",
				Fields: []Field{
					{Name: "api_version", Type: scalar("String")},
				},
			},
			{
				Kind: "ENUM",
				Name: "ReferenceGenomeId",
				EnumValues: []EnumValue{
					{Name: "GRCh37"},
					{Name: "GRCh38"},
				},
			},
		},
	}
}

func TestWalker_CycleTerminates(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	fields := w.Fields("Gene")
	require.Len(t, fields, 3)

	// Gene expands Transcript once.
	transcripts := fields.Get("transcripts")
	require.NotNil(t, transcripts)
	require.Len(t, transcripts.Subfields, 2)

	// Transcript's nested expansion of Gene is cut short: Gene is already on
	// the path, so the recursive occurrence has no fields.
	gene := transcripts.Subfields.Get("gene")
	require.NotNil(t, gene)
	assert.Empty(t, gene.Subfields)
}

func TestWalker_FieldOrderMatchesDeclaration(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	fields := w.Fields("Gene")
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"gene_id", "symbol", "transcripts"}, names)
}

func TestWalker_TypeStrings(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	fields := w.Fields("Gene")
	assert.Equal(t, "String!", fields.Get("gene_id").Type)
	assert.Equal(t, "String", fields.Get("symbol").Type)
	assert.Equal(t, "[Transcript]", fields.Get("transcripts").Type)
}

func TestWalker_ScalarAndEmptyAreTerminal(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	assert.Empty(t, w.Fields("String"))
	assert.Empty(t, w.Fields("ID"))
	assert.Empty(t, w.Fields(""))
}

func TestWalker_MissingTypeIsSoftFailure(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	// Unknown type: logged, empty map, no panic.
	assert.Empty(t, w.Fields("NoSuchType"))

	// Enum: has no field list, same soft path.
	assert.Empty(t, w.Fields("ReferenceGenomeId"))
}

func TestWalker_VisitedScopedPerCall(t *testing.T) {
	w := NewWalker(testSchema(), quietLogger())

	first := w.Fields("Gene")
	second := w.Fields("Gene")
	assert.Equal(t, first, second, "walks must not share visited state")
}

func TestQueryFieldMap(t *testing.T) {
	infos := QueryFieldMap(testSchema(), quietLogger())
	require.Len(t, infos, 2)

	gene := infos[0]
	assert.Equal(t, "gene", gene.Name)
	assert.Equal(t, "Gene", gene.ReturnType)
	require.Len(t, gene.Args, 2)
	assert.NotEmpty(t, gene.Fields)

	meta := infos[1]
	assert.Equal(t, "meta", meta.Name)
	assert.Equal(t, "Meta", meta.ReturnType)
}

func TestTypeRef_String(t *testing.T) {
	testCases := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"named", named("Gene"), "Gene"},
		{"non-null", nonNull(scalar("String")), "String!"},
		{"list", list(scalar("Int")), "[Int]"},
		{"non-null list of named", nonNull(list(named("Variant"))), "[Variant]!"},
		{"list of non-null", list(nonNull(named("Variant"))), "[Variant!]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ref.String())
		})
	}
}

func TestTypeRef_Inner(t *testing.T) {
	ref := nonNull(list(nonNull(named("Variant"))))
	assert.Equal(t, "Variant", ref.Inner())

	dangling := TypeRef{Kind: "LIST"}
	assert.Equal(t, "", dangling.Inner())
}

func TestSchema_ReturnType(t *testing.T) {
	s := testSchema()
	assert.Equal(t, "Gene", s.ReturnType("gene"))
	assert.Equal(t, "", s.ReturnType("nonexistent"))
}
