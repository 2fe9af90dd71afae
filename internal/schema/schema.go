// Package schema implements the typed, optionally-nullable field contract
// that every dataset row is validated against.
package schema

import (
	"linal/internal/errs"
	"linal/internal/value"
)

// Field describes one column: its name, declared type, and nullability.
type Field struct {
	Name     string
	Type     value.Type
	Nullable bool
}

// Schema is an ordered list of fields. Column order is the dataset's
// default projection order.
type Schema struct {
	Fields []Field
}

// IndexOf returns the position of the named field, or -1 if absent.
func (s Schema) IndexOf(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	i := s.IndexOf(name)
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Names returns the ordered column names.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Validate checks a candidate row against the schema: field count must
// match, and each value must be Null (only if that field is nullable) or
// assignable to the field's declared type.
func (s Schema) Validate(row []value.Value) error {
	if len(row) != len(s.Fields) {
		return &errs.SchemaViolation{
			Field:  "<row>",
			Reason: "field count does not match schema",
		}
	}
	for i, f := range s.Fields {
		v := row[i]
		if v.IsNull() {
			if !f.Nullable {
				return &errs.SchemaViolation{Field: f.Name, Reason: "null value in non-nullable field"}
			}
			continue
		}
		if !value.Assignable(v, f.Type) {
			return &errs.SchemaViolation{
				Field:  f.Name,
				Reason: "value of kind " + v.Kind().String() + " is not assignable to " + f.Type.String(),
			}
		}
	}
	return nil
}

// WithColumn returns a copy of the schema with an additional trailing
// field.
func (s Schema) WithColumn(f Field) Schema {
	fields := make([]Field, len(s.Fields)+1)
	copy(fields, s.Fields)
	fields[len(s.Fields)] = f
	return Schema{Fields: fields}
}

// WithoutColumn returns a copy of the schema with the named field removed.
func (s Schema) WithoutColumn(name string) Schema {
	fields := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name != name {
			fields = append(fields, f)
		}
	}
	return Schema{Fields: fields}
}

// Renamed returns a copy of the schema with a field renamed.
func (s Schema) Renamed(from, to string) Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == from {
			f.Name = to
		}
		fields[i] = f
	}
	return Schema{Fields: fields}
}
