// Package schema describes the column structure of a frame as an ordered
// sequence of named, typed fields. Fields may nest; lookups flatten nested
// fields into dotted leaf names while schema construction keeps the
// original structure intact.
package schema

// FieldType identifies what a field holds.
type FieldType string

const (
	// Numeric is a double-precision numeric field.
	Numeric FieldType = "numeric"
	// String is a free-form text field.
	String FieldType = "string"
	// Categorical is a field over a finite set of levels.
	Categorical FieldType = "categorical"
	// Struct is a named group of nested fields.
	Struct FieldType = "struct"
)

// Field is a single named column, or a named group of columns when Type is
// Struct.
type Field struct {
	Name     string    `yaml:"name"`
	Type     FieldType `yaml:"type"`
	Nullable bool      `yaml:"nullable,omitempty"`
	// Fields holds the nested children; populated only for Struct fields.
	Fields []Field `yaml:"fields,omitempty"`
}

// Schema is an ordered sequence of fields.
type Schema struct {
	Fields []Field `yaml:"fields"`
}

// New builds a schema from fields in the given order.
func New(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// Append returns a copy of the schema with the given fields appended. The
// receiver is not modified.
func (s Schema) Append(fields ...Field) Schema {
	out := make([]Field, 0, len(s.Fields)+len(fields))
	out = append(out, s.Fields...)
	out = append(out, fields...)
	return Schema{Fields: out}
}

// Flatten expands nested struct fields into leaf fields with dotted
// fully-qualified names, preserving order.
func (s Schema) Flatten() []Field {
	var out []Field
	for _, f := range s.Fields {
		out = flattenField(out, "", f)
	}
	return out
}

func flattenField(out []Field, prefix string, f Field) []Field {
	name := f.Name
	if prefix != "" {
		name = prefix + "." + f.Name
	}
	if f.Type == Struct {
		for _, child := range f.Fields {
			out = flattenField(out, name, child)
		}
		return out
	}
	leaf := f
	leaf.Name = name
	return append(out, leaf)
}

// Names returns the flattened leaf field names in order.
func (s Schema) Names() []string {
	flat := s.Flatten()
	names := make([]string, len(flat))
	for i, f := range flat {
		names[i] = f.Name
	}
	return names
}

// NameSet returns the flattened leaf names as a set for membership checks.
func (s Schema) NameSet() map[string]struct{} {
	flat := s.Flatten()
	set := make(map[string]struct{}, len(flat))
	for _, f := range flat {
		set[f.Name] = struct{}{}
	}
	return set
}
