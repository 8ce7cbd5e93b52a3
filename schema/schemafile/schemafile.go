// Package schemafile reads and writes Schema declarations as YAML documents:
//
//	name: Product
//	fields:
//	  - name: id
//	    type: integer
//	    unique: true
//	    min: 1
//	  - name: zone
//	    type: enum
//	    values: [dry, cold, frozen]
//
// Custom checks are stored by name and column list only. Their Predicates are
// resolved from a registry supplied when loading.
package schemafile

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/schema"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

type rawSchema struct {
	Name   string     `yaml:"name,omitempty"`
	Fields []rawField `yaml:"fields"`
}

type rawField struct {
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type"`
	Values       []string      `yaml:"values,omitempty"`
	Description  string        `yaml:"description,omitempty"`
	Nullable     bool          `yaml:"nullable,omitempty"`
	Unique       bool          `yaml:"unique,omitempty"`
	Min          interface{}   `yaml:"min,omitempty"`
	Max          interface{}   `yaml:"max,omitempty"`
	ExclusiveMin bool          `yaml:"exclusive_min,omitempty"`
	ExclusiveMax bool          `yaml:"exclusive_max,omitempty"`
	MultipleOf   float64       `yaml:"multiple_of,omitempty"`
	MinLength    *int          `yaml:"min_length,omitempty"`
	MaxLength    *int          `yaml:"max_length,omitempty"`
	Pattern      string        `yaml:"pattern,omitempty"`
	In           []interface{} `yaml:"in,omitempty"`
	Default      interface{}   `yaml:"default,omitempty"`
	Checks       []rawCheck    `yaml:"checks,omitempty"`
}

type rawCheck struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns,omitempty"`
}

// Load reads a Schema declaration from a YAML file. checks maps the names of
// custom checks to their Predicates.
func Load(path string, checks map[string]patina.Predicate) (patina.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, checks)
}

// Write stores a Schema declaration as a YAML file
func Write(path string, s patina.Schema) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a Schema declaration from a YAML stream. Unknown keys are rejected.
func Decode(r io.Reader, checks map[string]patina.Predicate) (patina.Schema, error) {
	var raw rawSchema
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	var multierr *multierror.Error
	fields := make([]patina.Field, 0, len(raw.Fields))
	for _, rf := range raw.Fields {
		f, err := rf.toField(checks)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		fields = append(fields, f)
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr
	}
	s, err := schema.Define(fields...)
	if err != nil {
		return nil, err
	}
	if raw.Name != "" {
		s = s.Named(raw.Name)
	}
	return s, nil
}

// Encode writes a Schema declaration to a YAML stream
func Encode(w io.Writer, s patina.Schema) error {
	raw := rawSchema{Name: s.Name()}
	for _, f := range s.Fields() {
		raw.Fields = append(raw.Fields, fromField(f))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&raw); err != nil {
		return err
	}
	return enc.Close()
}

func (rf rawField) toField(checks map[string]patina.Predicate) (patina.Field, error) {
	semType, err := patina.ParseSemanticType(rf.Type, rf.Values)
	if err != nil {
		return patina.Field{}, errors.InvalidConstraintError{Name: rf.Name, Reason: err.Error()}
	}
	f := patina.Field{
		Name:        rf.Name,
		Type:        semType,
		Description: rf.Description,
		Nullable:    rf.Nullable,
		Unique:      rf.Unique,
		MultipleOf:  rf.MultipleOf,
		MinLength:   rf.MinLength,
		MaxLength:   rf.MaxLength,
		Pattern:     rf.Pattern,
		In:          rf.In,
		Default:     rf.Default,
	}
	if rf.Min != nil || rf.Max != nil || rf.ExclusiveMin || rf.ExclusiveMax {
		f.Bounds = &patina.Bounds{Min: rf.Min, Max: rf.Max, ExclusiveMin: rf.ExclusiveMin, ExclusiveMax: rf.ExclusiveMax}
	}
	for _, rc := range rf.Checks {
		pred, ok := checks[rc.Name]
		if !ok {
			return patina.Field{}, errors.InvalidConstraintError{Name: rf.Name, Reason: fmt.Sprintf("check %s is not registered", rc.Name)}
		}
		f.Checks = append(f.Checks, patina.Check{Name: rc.Name, Columns: rc.Columns, Predicate: pred})
	}
	return f, nil
}

func fromField(f patina.Field) rawField {
	rf := rawField{
		Name:        f.Name,
		Type:        f.Type.Name(),
		Description: f.Description,
		Nullable:    f.Nullable,
		Unique:      f.Unique,
		MultipleOf:  f.MultipleOf,
		MinLength:   f.MinLength,
		MaxLength:   f.MaxLength,
		Pattern:     f.Pattern,
		Default:     encodeValue(f.Type, f.Default),
	}
	if e, ok := f.Type.(*patina.EnumType); ok {
		rf.Values = e.Values
	}
	if f.Bounds != nil {
		rf.Min = encodeValue(f.Type, f.Bounds.Min)
		rf.Max = encodeValue(f.Type, f.Bounds.Max)
		rf.ExclusiveMin = f.Bounds.ExclusiveMin
		rf.ExclusiveMax = f.Bounds.ExclusiveMax
	}
	for _, v := range f.In {
		rf.In = append(rf.In, encodeValue(f.Type, v))
	}
	for _, chk := range f.Checks {
		rf.Checks = append(rf.Checks, rawCheck{Name: chk.Name, Columns: chk.Columns})
	}
	return rf
}

// encodeValue renders times in the textual form accepted by their SemanticType
func encodeValue(semType patina.SemanticType, v interface{}) interface{} {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if _, isDate := semType.(*patina.DateType); isDate {
		return t.Format(patina.DateLayout)
	}
	return t.Format(time.RFC3339Nano)
}
