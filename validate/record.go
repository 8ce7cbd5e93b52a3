package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/report"
	"github.com/go-sif/patina/table"
)

// ValidateRecord checks a single set of values against s. Every field is checked, and all
// failures are returned together as a *report.Report. On success, the returned Record holds
// values normalized to the canonical representation of each field's SemanticType.
func ValidateRecord(s patina.Schema, values map[string]interface{}, opts ...Option) (patina.Record, error) {
	o := buildOptions(opts)
	fields := s.Fields()
	normalized := make(map[string]interface{}, len(fields))
	columns := make(map[string]patina.Column, len(fields))
	var failures []report.Failure

	for _, f := range fields {
		v, present := values[f.Name]
		if !present && !f.Nullable {
			failures = append(failures, report.Failure{Column: f.Name, Kind: report.MissingColumn})
			continue
		}
		var nv interface{}
		if v != nil {
			var ok bool
			if nv, ok = f.Type.Normalize(v); !ok {
				failures = append(failures, report.Failure{
					Column:  f.Name,
					Kind:    report.WrongType,
					Count:   1,
					Sample:  []interface{}{v},
					Message: fmt.Sprintf("value is not a valid %s", f.Type.Name()),
				})
				continue
			}
		}
		// a one-row column lets records share the whole-column checks used for tables
		col, err := table.CreateColumn(f.Name, f.Type.StorageType(), []interface{}{nv})
		if err != nil {
			failures = append(failures, report.Failure{Column: f.Name, Kind: report.WrongType, Count: 1, Message: err.Error()})
			continue
		}
		columns[f.Name] = col
		normalized[f.Name] = nv
	}
	if o.StrictColumns {
		for _, name := range sortedKeys(values) {
			if !s.HasField(name) {
				failures = append(failures, report.Failure{Column: name, Kind: report.UnexpectedColumn})
			}
		}
	}
	for _, f := range fields {
		if col, ok := columns[f.Name]; ok {
			failures = append(failures, checkContent(f, col, columns, 1, o)...)
		}
	}
	if len(failures) > 0 {
		report.Sort(failures, s.FieldIndex)
		return nil, report.New(s.Name(), failures)
	}
	return &record{schema: s, values: normalized}, nil
}

// record is a validated, normalized set of values
type record struct {
	schema patina.Schema
	values map[string]interface{}
}

// Schema returns the Schema this record was validated against
func (r *record) Schema() patina.Schema {
	return r.schema
}

// Get returns the value of a Field, which is nil for absent or null values
func (r *record) Get(name string) (interface{}, error) {
	if !r.schema.HasField(name) {
		return nil, errors.UnknownFieldError{Name: name}
	}
	return r.values[name], nil
}

// IsNil returns true iff the named Field is null or absent
func (r *record) IsNil(name string) bool {
	return r.values[name] == nil
}

// Values returns a copy of all values in this record
func (r *record) Values() map[string]interface{} {
	res := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		res[k] = v
	}
	return res
}

// ToString returns a string representation of this record, in field declaration order
func (r *record) ToString() string {
	parts := make([]string, 0, len(r.values))
	r.schema.ForEachField(func(idx int, f patina.Field) error {
		v := r.values[f.Name]
		if v == nil {
			parts = append(parts, f.Name+": null")
		} else {
			parts = append(parts, f.Name+": "+f.Type.StorageType().ToString(v))
		}
		return nil
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

// sortedKeys returns the keys of values in lexical order
func sortedKeys(values map[string]interface{}) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
