package schema

import (
	"fmt"
	"reflect"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/hashicorp/go-multierror"
)

// schema is an ordered collection of Fields, indexed by name.
// It is never modified after construction.
type schema struct {
	name   string
	fields []patina.Field
	index  map[string]int
}

// Define is a factory for Schemas. Every definition problem (duplicate names,
// constraints incompatible with a Field's type, checks referencing unknown
// Fields) is reported at once, as a multierror.
func Define(fields ...patina.Field) (patina.Schema, error) {
	var multierr *multierror.Error
	s := &schema{
		fields: make([]patina.Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			multierr = multierror.Append(multierr, errors.DuplicateFieldError{Name: f.Name})
			continue
		}
		normalized, errs := normalizeField(f)
		for _, err := range errs {
			multierr = multierror.Append(multierr, err)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, normalized)
	}
	// custom checks may only reference declared fields
	for _, f := range s.fields {
		for _, chk := range f.Checks {
			for _, col := range f.CheckColumns(chk) {
				if _, ok := s.index[col]; !ok {
					multierr = multierror.Append(multierr, errors.UnknownFieldError{Name: col})
				}
			}
		}
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// build constructs a schema from Fields which are already known to be valid
func build(name string, fields []patina.Field) *schema {
	s := &schema{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

// Name returns the name of the record type described by this Schema
func (s *schema) Name() string {
	return s.name
}

// Named returns a copy of this Schema with a different name
func (s *schema) Named(name string) patina.Schema {
	return build(name, s.Fields())
}

// NumFields returns the number of Fields in this Schema
func (s *schema) NumFields() int {
	return len(s.fields)
}

// FieldNames returns the names of all Fields, in declaration order
func (s *schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns copies of all Fields, in declaration order
func (s *schema) Fields() []patina.Field {
	res := make([]patina.Field, len(s.fields))
	for i, f := range s.fields {
		res[i] = f.Clone()
	}
	return res
}

// Field returns a copy of the named Field
func (s *schema) Field(name string) (patina.Field, error) {
	idx, ok := s.index[name]
	if !ok {
		return patina.Field{}, errors.UnknownFieldError{Name: name}
	}
	return s.fields[idx].Clone(), nil
}

// FieldIndex returns the declaration position of the named Field, or -1
func (s *schema) FieldIndex(name string) int {
	idx, ok := s.index[name]
	if !ok {
		return -1
	}
	return idx
}

// HasField returns true iff this Schema declares the named Field
func (s *schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// NonNullableFields returns the names of all Fields which reject nulls
func (s *schema) NonNullableFields() []string {
	res := []string{}
	for _, f := range s.fields {
		if !f.Nullable {
			res = append(res, f.Name)
		}
	}
	return res
}

// ForEachField iterates over Fields in declaration order
func (s *schema) ForEachField(fn func(idx int, field patina.Field) error) error {
	for i, f := range s.fields {
		if err := fn(i, f.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// Equals returns nil iff this and another Schema declare identical Fields in identical order
func (s *schema) Equals(other patina.Schema) error {
	if s.NumFields() != other.NumFields() {
		return fmt.Errorf("Schemas have unequal numbers of fields")
	}
	return s.ForEachField(func(idx int, f patina.Field) error {
		if other.FieldIndex(f.Name) != idx {
			return fmt.Errorf("Field %s positions do not match", f.Name)
		}
		of, err := other.Field(f.Name)
		if err != nil {
			return err
		}
		if reflect.TypeOf(f.Type) != reflect.TypeOf(of.Type) {
			return fmt.Errorf("Field %s types do not match", f.Name)
		}
		if !f.Equals(of) {
			return fmt.Errorf("Field %s constraints do not match", f.Name)
		}
		return nil
	})
}
