package introspection

import (
	"log/slog"
)

// FieldInfo describes one requestable field: its rendered type, description,
// declared arguments, and - for composite types - the nested fields beneath
// it.
type FieldInfo struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Description string       `json:"description,omitempty"`
	Args        []InputValue `json:"args,omitempty"`
	Subfields   Fields       `json:"subfields,omitempty"`
}

// Fields is an ordered field map. Order matches schema declaration order;
// the query generator depends on this for deterministic output.
type Fields []FieldInfo

// Get returns the entry named name, or nil.
func (fs Fields) Get(name string) *FieldInfo {
	for i := range fs {
		if fs[i].Name == name {
			return &fs[i]
		}
	}
	return nil
}

// QueryInfo describes a root query field together with its derived field
// map. One QueryInfo is the unit of work for the query generator.
type QueryInfo struct {
	Name        string       `json:"name"`
	ReturnType  string       `json:"return_type"`
	Description string       `json:"description,omitempty"`
	Args        []InputValue `json:"args,omitempty"`
	Fields      Fields       `json:"fields"`
}

// Walker derives field maps from an introspected schema. Lookup misses are
// tolerated as soft failures: they are logged and produce a
// smaller-than-expected map rather than an error, so schema drift never
// breaks the offline pipeline outright.
type Walker struct {
	types map[string]*Type
	log   *slog.Logger
}

// NewWalker builds a walker over the schema. A nil logger falls back to
// slog.Default.
func NewWalker(s *Schema, log *slog.Logger) *Walker {
	if log == nil {
		log = slog.Default()
	}
	return &Walker{types: s.TypeMap(), log: log}
}

// Fields derives the full requestable field map for the named type.
func (w *Walker) Fields(typeName string) Fields {
	return w.fields(typeName, nil)
}

// fields recursively expands typeName, threading the set of type names
// already expanded on the current root-to-leaf path. A type appearing twice
// on one path is cut short with no fields, which keeps cyclic schemas
// finite: the first occurrence is expanded, recursive occurrences are not.
func (w *Walker) fields(typeName string, visited map[string]bool) Fields {
	if typeName == "" || IsScalar(typeName) {
		return nil
	}
	if visited[typeName] {
		return nil
	}
	def, ok := w.types[typeName]
	if !ok {
		w.log.Warn("type definition not found", "type", typeName)
		return nil
	}
	if def.Fields == nil {
		w.log.Warn("type has no fields", "type", typeName, "kind", def.Kind)
		return nil
	}

	path := make(map[string]bool, len(visited)+1)
	for k := range visited {
		path[k] = true
	}
	path[typeName] = true

	out := make(Fields, 0, len(def.Fields))
	for _, f := range def.Fields {
		info := FieldInfo{
			Name:        f.Name,
			Type:        f.Type.String(),
			Description: f.Description,
			Args:        f.Args,
		}
		if inner := f.Type.Inner(); inner != "" && !IsScalar(inner) {
			info.Subfields = w.fields(inner, path)
		}
		out = append(out, info)
	}
	return out
}

// QueryFieldMap derives a QueryInfo for every root query field in the
// schema, in declaration order.
func QueryFieldMap(s *Schema, log *slog.Logger) []QueryInfo {
	w := NewWalker(s, log)
	queryFields := s.QueryFields()
	out := make([]QueryInfo, 0, len(queryFields))
	for _, qf := range queryFields {
		ret := qf.Type.Inner()
		if ret == "" {
			continue
		}
		out = append(out, QueryInfo{
			Name:        qf.Name,
			ReturnType:  ret,
			Description: qf.Description,
			Args:        qf.Args,
			Fields:      w.Fields(ret),
		})
	}
	return out
}
