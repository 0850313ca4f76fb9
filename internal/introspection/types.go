// Package introspection models a GraphQL introspection result and derives,
// for any named type, the full set of requestable fields. The derived field
// maps feed the query generator in internal/querygen.
package introspection

// Snapshot is a persisted introspection document as written by the
// fetch-schema command: the __schema payload plus fetch metadata.
type Snapshot struct {
	Schema   Schema    `json:"__schema"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Metadata records where and when a snapshot was fetched.
type Metadata struct {
	APIURL    string `json:"api_url"`
	FetchedAt string `json:"fetched_at"`
}

// Schema is the __schema portion of an introspection result.
type Schema struct {
	QueryType  *Type       `json:"queryType"`
	Types      []Type      `json:"types"`
	Directives []Directive `json:"directives,omitempty"`
}

// Type is a full type definition. Wrapper kinds (NON_NULL, LIST) never
// appear here - they only occur inside TypeRef chains.
type Type struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Fields        []Field      `json:"fields"`
	InputFields   []InputValue `json:"inputFields,omitempty"`
	Interfaces    []TypeRef    `json:"interfaces,omitempty"`
	EnumValues    []EnumValue  `json:"enumValues,omitempty"`
	PossibleTypes []TypeRef    `json:"possibleTypes,omitempty"`
}

// Field is a requestable field on a composite type.
type Field struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Args        []InputValue `json:"args,omitempty"`
	Type        TypeRef      `json:"type"`
}

// InputValue is an argument or input-object field.
type InputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Type         TypeRef `json:"type"`
	DefaultValue *string `json:"defaultValue,omitempty"`
}

// EnumValue is a member of an enum type.
type EnumValue struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Directive is a schema directive declaration.
type Directive struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Locations   []string     `json:"locations,omitempty"`
	Args        []InputValue `json:"args,omitempty"`
}

// TypeRef is a (possibly wrapped) reference to a type. NON_NULL and LIST
// wrappers chain through OfType down to an innermost named type.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// Inner unwraps NON_NULL and LIST wrappers and returns the innermost named
// type, or "" if the chain never reaches a name.
func (r *TypeRef) Inner() string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.OfType.Inner()
}

// String renders the reference in GraphQL type syntax: NON_NULL wraps with a
// trailing "!", LIST wraps with brackets, named types render bare.
func (r *TypeRef) String() string {
	if r == nil {
		return "unknown"
	}
	switch r.Kind {
	case "NON_NULL":
		return r.OfType.String() + "!"
	case "LIST":
		return "[" + r.OfType.String() + "]"
	}
	if r.Name != "" {
		return r.Name
	}
	if r.Kind != "" {
		return r.Kind
	}
	return "unknown"
}

// scalarNames are the built-in leaf types. Field derivation never recurses
// into these.
var scalarNames = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// IsScalar reports whether name is a built-in scalar type.
func IsScalar(name string) bool {
	return scalarNames[name]
}

// TypeMap builds a name -> definition index over the schema's types.
func (s *Schema) TypeMap() map[string]*Type {
	m := make(map[string]*Type, len(s.Types))
	for i := range s.Types {
		m[s.Types[i].Name] = &s.Types[i]
	}
	return m
}

// QueryFields returns the root query fields. The queryType payload is
// preferred; older snapshots only carry the type under its name in the
// types list.
func (s *Schema) QueryFields() []Field {
	if s.QueryType != nil && len(s.QueryType.Fields) > 0 {
		return s.QueryType.Fields
	}
	for i := range s.Types {
		if s.Types[i].Name == "Query" {
			return s.Types[i].Fields
		}
	}
	return nil
}

// QueryField returns the root query field with the given name, or nil.
func (s *Schema) QueryField(name string) *Field {
	fields := s.QueryFields()
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

// ReturnType returns the innermost named return type of a root query field,
// or "" if the query does not exist.
func (s *Schema) ReturnType(queryName string) string {
	f := s.QueryField(queryName)
	if f == nil {
		return ""
	}
	return f.Type.Inner()
}
