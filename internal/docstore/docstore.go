// Package docstore resolves pre-built GraphQL query documents keyed by
// (version, query name). The documents shipped with the binary are produced
// by the generate pipeline and embedded read-only; a Dir store loads freshly
// generated documents from disk instead.
package docstore

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/genelab/gnomad-mcp/internal/registry"
)

//go:embed queries
var queriesFS embed.FS

// NotFoundError indicates that no document exists for (version, name).
type NotFoundError struct {
	Version registry.Version
	Name    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("query document not found: %s/%s", e.Version, e.Name)
}

// Store resolves a query document by version and query name.
type Store interface {
	Document(v registry.Version, name string) (string, error)
}

// Embedded serves the documents compiled into the binary.
type Embedded struct{}

// Document returns the embedded document for (v, name).
func (Embedded) Document(v registry.Version, name string) (string, error) {
	data, err := queriesFS.ReadFile(path(string(v), name))
	if err != nil {
		return "", &NotFoundError{Version: v, Name: name}
	}
	return string(data), nil
}

// Names lists the query names with an embedded document for the version.
func (Embedded) Names(v registry.Version) ([]string, error) {
	entries, err := fs.ReadDir(queriesFS, "queries/"+string(v))
	if err != nil {
		return nil, fmt.Errorf("no embedded documents for version %s: %w", v, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".graphql"))
	}
	return names, nil
}

// Dir serves documents from <root>/<version>/<name>.graphql on disk.
type Dir string

// Document returns the on-disk document for (v, name).
func (d Dir) Document(v registry.Version, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(string(d), string(v), name+".graphql"))
	if err != nil {
		return "", &NotFoundError{Version: v, Name: name}
	}
	return string(data), nil
}

func path(version, name string) string {
	return "queries/" + version + "/" + name + ".graphql"
}
