package mock

import (
	"fmt"
	"regexp"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/internal/compute"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/schema"
	"github.com/go-sif/patina/table"
)

// Generate produces a Table of rowCount rows which satisfies every constraint declared by s,
// apart from custom checks. Columns use the default storage type of each field. overrides
// supply the values of individual columns, and must hold exactly rowCount values each.
func Generate(s patina.Schema, rowCount int, overrides map[string][]interface{}) (patina.Table, error) {
	if rowCount < 0 {
		return nil, fmt.Errorf("Cannot generate %d rows", rowCount)
	}
	for name, values := range overrides {
		if !s.HasField(name) {
			return nil, errors.UnknownFieldError{Name: name}
		}
		if len(values) != rowCount {
			return nil, fmt.Errorf("Override for field %s has %d values, expected %d", name, len(values), rowCount)
		}
	}
	cols := make([]patina.Column, 0, s.NumFields())
	err := s.ForEachField(func(idx int, f patina.Field) error {
		var col patina.Column
		var err error
		if values, ok := overrides[f.Name]; ok {
			col, err = table.ConvertColumn(f.Name, f.Type.StorageType(), values)
		} else {
			var values []interface{}
			if values, err = generateField(f, rowCount); err != nil {
				return err
			}
			col, err = table.CreateColumn(f.Name, f.Type.StorageType(), values)
		}
		if err != nil {
			return err
		}
		cols = append(cols, col)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Debugf("Generated %d rows for %d fields", rowCount, len(cols))
	return table.CreateTable(cols...)
}

// generateField synthesizes rowCount values satisfying the constraints of f
func generateField(f patina.Field, rowCount int) ([]interface{}, error) {
	var re *regexp.Regexp
	if f.Pattern != "" {
		var err error
		if re, err = schema.CompilePattern(f.Pattern); err != nil {
			return nil, errors.UnsatisfiableConstraintError{Name: f.Name, Reason: err.Error()}
		}
	}
	sets := compute.PermittedSets(f)
	satisfies := func(v interface{}) bool {
		return satisfiesAll(f, v, re, sets)
	}

	var values []interface{}
	var reason string
	if candidates := constantCandidates(f); candidates != nil {
		values, reason = fromCandidates(f, candidates, rowCount, satisfies)
	} else if !f.Unique && f.Default != nil && satisfies(f.Default) {
		values = make([]interface{}, rowCount)
		for i := range values {
			values[i] = f.Default
		}
	} else {
		switch f.Type.(type) {
		case *patina.IntegerType:
			values, reason = generateIntegers(f, rowCount)
		case *patina.FloatType:
			values, reason = generateFloats(f, rowCount)
		case *patina.DateType:
			values, reason = generateDates(f, rowCount)
		case *patina.DatetimeType:
			values, reason = generateDatetimes(f, rowCount)
		case *patina.BooleanType:
			values, reason = generateBooleans(f, rowCount)
		case *patina.StringType:
			if re != nil {
				values, reason = generatePatterned(f, rowCount, re)
			} else {
				values, reason = generateWords(f, rowCount)
			}
		default:
			reason = fmt.Sprintf("cannot generate values of type %s", f.Type.Name())
		}
	}
	if reason == "" {
		reason = verify(f, values, satisfies)
	}
	if reason != "" {
		return nil, errors.UnsatisfiableConstraintError{Name: f.Name, Reason: reason}
	}
	return values, nil
}

// verify rejects generated values which break a constraint of f, such as floats rounded onto a bound
func verify(f patina.Field, values []interface{}, satisfies func(interface{}) bool) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if !satisfies(v) {
			return fmt.Sprintf("generated value %v violates the constraints", v)
		}
		if f.Unique {
			k := compute.Key(v)
			if _, dup := seen[k]; dup {
				return fmt.Sprintf("generated value %v is not distinct", v)
			}
			seen[k] = struct{}{}
		}
	}
	return ""
}

// constantCandidates returns the values of a constant set or enum, or nil if f declares neither
func constantCandidates(f patina.Field) []interface{} {
	if f.In != nil {
		return f.In
	}
	if e, ok := f.Type.(*patina.EnumType); ok {
		values := make([]interface{}, len(e.Values))
		for i, v := range e.Values {
			values[i] = v
		}
		return values
	}
	return nil
}

// fromCandidates cycles through the candidates which satisfy every constraint
func fromCandidates(f patina.Field, candidates []interface{}, rowCount int, satisfies func(interface{}) bool) ([]interface{}, string) {
	var usable []interface{}
	seen := make(map[string]struct{}, len(candidates))
	for _, v := range candidates {
		k := compute.Key(v)
		if _, dup := seen[k]; dup || !satisfies(v) {
			continue
		}
		seen[k] = struct{}{}
		usable = append(usable, v)
	}
	if len(usable) == 0 {
		if rowCount == 0 {
			return []interface{}{}, ""
		}
		return nil, "no permitted value satisfies the remaining constraints"
	}
	if f.Unique && rowCount > len(usable) {
		return nil, fmt.Sprintf("only %d distinct permitted values for %d rows", len(usable), rowCount)
	}
	values := make([]interface{}, rowCount)
	for i := range values {
		values[i] = usable[i%len(usable)]
	}
	return values, ""
}

func generateBooleans(f patina.Field, rowCount int) ([]interface{}, string) {
	if f.Unique && rowCount > 2 {
		return nil, fmt.Sprintf("only 2 distinct boolean values for %d rows", rowCount)
	}
	values := make([]interface{}, rowCount)
	for i := range values {
		values[i] = i%2 == 1
	}
	return values, ""
}

// satisfiesAll returns true iff v meets every non-custom constraint of f
func satisfiesAll(f patina.Field, v interface{}, re *regexp.Regexp, sets []compute.ValueSet) bool {
	if violates, err := compute.ViolatesBounds(v, f.Bounds); err != nil || violates {
		return false
	}
	if f.MultipleOf > 0 && !compute.IsMultipleOf(v, f.MultipleOf) {
		return false
	}
	if s, ok := v.(string); ok {
		if (f.MinLength != nil || f.MaxLength != nil) && compute.ViolatesLength(s, f.MinLength, f.MaxLength) {
			return false
		}
		if re != nil && !re.MatchString(s) {
			return false
		}
	}
	for _, set := range sets {
		if !set.Contains(v) {
			return false
		}
	}
	return true
}
