package querygen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/genelab/gnomad-mcp/internal/introspection"
)

// GenerateLogFile lists every document written by WriteDocuments.
const GenerateLogFile = "querygen.log"

// GenerateAll synthesizes one document per root query field in the schema,
// in declaration order. Queries whose field map comes out empty (scalar
// return types, schema drift) are skipped with a warning rather than
// failing the run.
func GenerateAll(schema *introspection.Schema, log *slog.Logger) (map[string]string, []string, error) {
	if log == nil {
		log = slog.Default()
	}
	infos := introspection.QueryFieldMap(schema, log)
	docs := make(map[string]string, len(infos))
	order := make([]string, 0, len(infos))
	for _, info := range infos {
		text, err := Synthesize(info.Name, info)
		if err != nil {
			log.Warn("skipping query", "query", info.Name, "reason", err)
			continue
		}
		docs[info.Name] = text
		order = append(order, info.Name)
	}
	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("no queries could be synthesized from schema")
	}
	return docs, order, nil
}

// WriteDocuments writes each document to <dir>/<query>.graphql and a log of
// what was written to <dir>/querygen.log. Returns the written paths in
// generation order.
func WriteDocuments(docs map[string]string, order []string, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(order))
	var logb strings.Builder
	for _, name := range order {
		path := filepath.Join(dir, name+".graphql")
		if err := os.WriteFile(path, []byte(docs[name]), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		logb.WriteString("wrote: " + path + "\n")
	}

	logPath := filepath.Join(dir, GenerateLogFile)
	if err := os.WriteFile(logPath, []byte(logb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write generation log: %w", err)
	}
	return paths, nil
}
