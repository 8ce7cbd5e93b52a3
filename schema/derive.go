package schema

import (
	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/hashicorp/go-multierror"
)

// Select projects this Schema onto the named Fields, in the order given.
// Custom checks which reference Fields outside the projection are dropped.
func (s *schema) Select(names ...string) (patina.Schema, error) {
	var multierr *multierror.Error
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !s.HasField(name) {
			multierr = multierror.Append(multierr, errors.UnknownFieldError{Name: name})
		} else if seen[name] {
			multierr = multierror.Append(multierr, errors.DuplicateFieldError{Name: name})
		}
		seen[name] = true
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr
	}
	fields := make([]patina.Field, 0, len(names))
	for _, name := range names {
		f := s.fields[s.index[name]].Clone()
		f.Checks = retainChecks(f, seen)
		fields = append(fields, f)
	}
	return build(s.name, fields), nil
}

// Drop removes the named Fields from this Schema, preserving the order of those remaining
func (s *schema) Drop(names ...string) (patina.Schema, error) {
	var multierr *multierror.Error
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if !s.HasField(name) {
			multierr = multierror.Append(multierr, errors.UnknownFieldError{Name: name})
		}
		dropped[name] = true
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr
	}
	keep := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		if !dropped[f.Name] {
			keep = append(keep, f.Name)
		}
	}
	return s.Select(keep...)
}

// retainChecks returns the checks of f whose referenced columns are all in kept
func retainChecks(f patina.Field, kept map[string]bool) []patina.Check {
	if len(f.Checks) == 0 {
		return f.Checks
	}
	res := make([]patina.Check, 0, len(f.Checks))
	for _, chk := range f.Checks {
		ok := true
		for _, col := range f.CheckColumns(chk) {
			if !kept[col] {
				ok = false
				break
			}
		}
		if ok {
			res = append(res, chk)
		}
	}
	return res
}

// Rename prefixes and suffixes every Field name, including the names referenced by custom checks
func (s *schema) Rename(prefix string, suffix string) patina.Schema {
	rename := func(name string) string { return prefix + name + suffix }
	fields := make([]patina.Field, len(s.fields))
	for i, f := range s.fields {
		nf := f.Clone()
		for j, chk := range nf.Checks {
			cols := f.CheckColumns(chk)
			renamed := make([]string, len(cols))
			for k, col := range cols {
				renamed[k] = rename(col)
			}
			nf.Checks[j].Columns = renamed
		}
		nf.Name = rename(f.Name)
		fields[i] = nf
	}
	return build(s.name, fields)
}

// WithOptional marks the named Fields as nullable. If no names are given, every Field becomes nullable.
// This models the nulls introduced by the right-hand side of a left outer join.
func (s *schema) WithOptional(names ...string) (patina.Schema, error) {
	var multierr *multierror.Error
	optional := make(map[string]bool, len(names))
	for _, name := range names {
		if !s.HasField(name) {
			multierr = multierror.Append(multierr, errors.UnknownFieldError{Name: name})
		}
		optional[name] = true
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr
	}
	fields := s.Fields()
	for i := range fields {
		if len(names) == 0 || optional[fields[i].Name] {
			fields[i].Nullable = true
		}
	}
	return build(s.name, fields), nil
}

// Join unions the Fields of this and another Schema. Fields declared identically in
// both appear once, at their position in this Schema. Fields declared differently
// under the same name produce a FieldCollisionError.
func (s *schema) Join(other patina.Schema) (patina.Schema, error) {
	var multierr *multierror.Error
	fields := s.Fields()
	for _, of := range other.Fields() {
		idx, ok := s.index[of.Name]
		if !ok {
			fields = append(fields, of)
			continue
		}
		if !s.fields[idx].Equals(of) {
			multierr = multierror.Append(multierr, errors.FieldCollisionError{Name: of.Name})
		}
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr
	}
	name := s.name
	if name == "" {
		name = other.Name()
	}
	return build(name, fields), nil
}
