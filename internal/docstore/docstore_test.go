package docstore

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/genelab/gnomad-mcp/internal/registry"
)

func TestEmbedded_CoversExactlySupportedSets(t *testing.T) {
	// Each version ships a document for every supported query and nothing
	// else: the embedded set and the registry must never drift apart.
	for _, v := range registry.Versions() {
		t.Run(string(v), func(t *testing.T) {
			names, err := Embedded{}.Names(v)
			require.NoError(t, err)

			want := v.SupportedQueries()
			sort.Strings(names)
			sort.Strings(want)
			assert.Equal(t, want, names)
		})
	}
}

func TestEmbedded_DocumentsParse(t *testing.T) {
	for _, v := range registry.Versions() {
		for _, name := range v.SupportedQueries() {
			t.Run(string(v)+"/"+name, func(t *testing.T) {
				text, err := Embedded{}.Document(v, name)
				require.NoError(t, err)
				require.NotEmpty(t, text)

				doc, gqlErr := parser.ParseQuery(&ast.Source{Name: name, Input: text})
				require.Nil(t, gqlErr, "embedded document must be valid GraphQL")
				require.Len(t, doc.Operations, 1)
				assert.Equal(t, name, doc.Operations[0].Name)
			})
		}
	}
}

func TestEmbedded_VersionsShipDistinctDocuments(t *testing.T) {
	// The same query name resolves to version-specific content where the
	// API differs across releases.
	v2, err := Embedded{}.Document(registry.V2, "variant")
	require.NoError(t, err)
	v3, err := Embedded{}.Document(registry.V3, "variant")
	require.NoError(t, err)
	v4, err := Embedded{}.Document(registry.V4, "variant")
	require.NoError(t, err)

	assert.NotEqual(t, v2, v3)
	assert.NotEqual(t, v3, v4)
	assert.Contains(t, v2, "multi_nucleotide_variants")
	assert.NotContains(t, v3, "exome")
	assert.Contains(t, v4, "joint")
}

func TestEmbedded_NotFound(t *testing.T) {
	_, err := Embedded{}.Document(registry.V2, "region")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, registry.V2, nf.Version)
	assert.Equal(t, "region", nf.Name)
}

func TestDir_Document(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "v4"), 0o755))
	text := "query meta { meta { clinvar_release_date } }\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "v4", "meta.graphql"), []byte(text), 0o644))

	got, err := Dir(root).Document(registry.V4, "meta")
	require.NoError(t, err)
	assert.Equal(t, text, got)

	_, err = Dir(root).Document(registry.V4, "gene")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
