// Package querygen renders derived field maps into GraphQL query documents.
// Rendering is pure and deterministic: the same field map always produces
// byte-identical text. Every rendered document is checked with gqlparser
// before it leaves this package; a document that does not parse is a
// synthesis bug, not a caller error.
package querygen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/genelab/gnomad-mcp/internal/introspection"
)

// Synthesize renders a complete query document for the named root query:
// a parameter list (omitted when there are no arguments), a root selection
// with matching variable bindings, and the nested selection-set body.
func Synthesize(queryName string, info introspection.QueryInfo) (string, error) {
	if len(info.Fields) == 0 {
		return "", fmt.Errorf("query %q has no requestable fields", queryName)
	}

	var b strings.Builder
	b.WriteString("query ")
	b.WriteString(queryName)
	b.WriteString(argDefs(info.Args))
	b.WriteString(" {\n    ")
	b.WriteString(queryName)
	b.WriteString(argBindings(info.Args))
	b.WriteString(" {\n")
	b.WriteString(fieldsBlock(info.Fields, 6))
	b.WriteString("\n    }\n}\n")

	text := b.String()
	if _, gqlErr := parser.ParseQuery(&ast.Source{Name: queryName + ".graphql", Input: text}); gqlErr != nil {
		return "", fmt.Errorf("synthesized document for %q does not parse: %w", queryName, gqlErr)
	}
	return text, nil
}

// argDefs renders the operation parameter list: ($name: Type, ...).
func argDefs(args []introspection.InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = "$" + a.Name + ": " + a.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// argBindings renders the root field's variable bindings: (name: $name, ...).
func argBindings(args []introspection.InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name + ": $" + a.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// fieldsBlock renders a selection set at the given indent. Leaf fields are
// emitted bare; composite fields open a nested brace block two spaces
// deeper. Field order is preserved from the field map.
func fieldsBlock(fields introspection.Fields, indent int) string {
	pad := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f.Subfields) > 0 {
			sub := fieldsBlock(f.Subfields, indent+2)
			lines = append(lines, pad+f.Name+" {\n"+sub+"\n"+pad+"}")
		} else {
			lines = append(lines, pad+f.Name)
		}
	}
	return strings.Join(lines, "\n")
}
