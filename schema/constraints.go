package schema

import (
	"fmt"
	"regexp"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
)

// normalizeField checks that every constraint on f is compatible with its
// SemanticType, and returns a copy of f whose bounds, constant set and
// default have been coerced into the canonical representation of that type
func normalizeField(f patina.Field) (patina.Field, []error) {
	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, errors.InvalidConstraintError{Name: f.Name, Reason: fmt.Sprintf(format, args...)})
	}
	if f.Name == "" {
		invalid("field name must not be empty")
	}
	if f.Type == nil {
		invalid("field must declare a semantic type")
		return f, errs
	}
	res := f.Clone()
	_, isString := f.Type.(*patina.StringType)
	_, isFloat := f.Type.(*patina.FloatType)
	_, isInteger := f.Type.(*patina.IntegerType)

	if e, ok := f.Type.(*patina.EnumType); ok && len(e.Values) == 0 {
		invalid("enum must declare at least one value")
	}
	if f.Bounds != nil {
		if !f.Type.Orderable() {
			invalid("bounds are not supported for %s fields", f.Type.Name())
		} else {
			if f.Bounds.Min != nil {
				v, ok := f.Type.Normalize(f.Bounds.Min)
				if !ok {
					invalid("minimum %#v is not a valid %s", f.Bounds.Min, f.Type.Name())
				}
				res.Bounds.Min = v
			}
			if f.Bounds.Max != nil {
				v, ok := f.Type.Normalize(f.Bounds.Max)
				if !ok {
					invalid("maximum %#v is not a valid %s", f.Bounds.Max, f.Type.Name())
				}
				res.Bounds.Max = v
			}
		}
	}
	if f.MultipleOf != 0 {
		if !isFloat && !isInteger {
			invalid("multiple_of is not supported for %s fields", f.Type.Name())
		} else if f.MultipleOf < 0 {
			invalid("multiple_of must be positive")
		}
	}
	if f.MinLength != nil || f.MaxLength != nil {
		if !isString {
			invalid("length bounds are not supported for %s fields", f.Type.Name())
		}
		if (f.MinLength != nil && *f.MinLength < 0) || (f.MaxLength != nil && *f.MaxLength < 0) {
			invalid("length bounds must not be negative")
		}
	}
	if f.Pattern != "" {
		if !isString {
			invalid("pattern is not supported for %s fields", f.Type.Name())
		} else if _, err := CompilePattern(f.Pattern); err != nil {
			invalid("pattern %q does not compile: %s", f.Pattern, err)
		}
	}
	for i, v := range f.In {
		nv, ok := f.Type.Normalize(v)
		if !ok {
			invalid("permitted value %#v is not a valid %s", v, f.Type.Name())
			continue
		}
		res.In[i] = nv
	}
	if f.Default != nil {
		nv, ok := f.Type.Normalize(f.Default)
		if !ok {
			invalid("default %#v is not a valid %s", f.Default, f.Type.Name())
		} else {
			res.Default = nv
		}
	}
	for _, chk := range f.Checks {
		if chk.Predicate == nil {
			invalid("check %s has no predicate", chk.Name)
		}
	}
	return res, errs
}

// CompilePattern compiles a Field pattern so that it must match an entire value
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}
