package patina

import (
	"reflect"
)

// Bounds constrain an orderable Field to a range. Either bound may be nil.
// Bounds are inclusive unless the corresponding Exclusive flag is set.
type Bounds struct {
	Min          interface{}
	Max          interface{}
	ExclusiveMin bool
	ExclusiveMax bool
}

// Predicate evaluates a custom constraint across whole columns, returning a Mask
// which is true for every row satisfying the constraint. cols are supplied in
// the order declared by Check.Columns.
type Predicate func(cols []Column) (Mask, error)

// Check is a custom, possibly cross-column, constraint attached to a Field
type Check struct {
	Name      string   // Name identifies the check in reports
	Columns   []string // Columns referenced by the Predicate. Defaults to the owning Field.
	Predicate Predicate
}

// Field declares the type and constraints of a single column
type Field struct {
	Name        string
	Type        SemanticType
	Nullable    bool
	Unique      bool
	Bounds      *Bounds
	MultipleOf  float64 // 0 means unconstrained
	MinLength   *int
	MaxLength   *int
	Pattern     string        // a regular expression which string values must fully match
	In          []interface{} // a constant set of permitted values
	Checks      []Check
	Default     interface{}
	Description string
}

// Clone returns a deep copy of this Field
func (f Field) Clone() Field {
	c := f
	if f.Bounds != nil {
		b := *f.Bounds
		c.Bounds = &b
	}
	if f.MinLength != nil {
		l := *f.MinLength
		c.MinLength = &l
	}
	if f.MaxLength != nil {
		l := *f.MaxLength
		c.MaxLength = &l
	}
	if f.In != nil {
		c.In = append([]interface{}{}, f.In...)
	}
	if f.Checks != nil {
		c.Checks = make([]Check, len(f.Checks))
		for i, chk := range f.Checks {
			c.Checks[i] = Check{
				Name:      chk.Name,
				Columns:   append([]string{}, chk.Columns...),
				Predicate: chk.Predicate,
			}
		}
	}
	if e, ok := f.Type.(*EnumType); ok {
		c.Type = &EnumType{Values: append([]string{}, e.Values...)}
	}
	return c
}

// CheckColumns returns the columns referenced by a Check, defaulting to the owning Field
func (f Field) CheckColumns(chk Check) []string {
	if len(chk.Columns) == 0 {
		return []string{f.Name}
	}
	return chk.Columns
}

// Equals returns true iff both Fields declare identical constraints. Predicates are
// compared by identity.
func (f Field) Equals(o Field) bool {
	if f.Name != o.Name || f.Nullable != o.Nullable || f.Unique != o.Unique ||
		f.MultipleOf != o.MultipleOf || f.Pattern != o.Pattern || f.Description != o.Description {
		return false
	}
	if (f.Type == nil) != (o.Type == nil) {
		return false
	}
	if f.Type != nil && (reflect.TypeOf(f.Type) != reflect.TypeOf(o.Type) || !reflect.DeepEqual(f.Type, o.Type)) {
		return false
	}
	if !reflect.DeepEqual(f.Bounds, o.Bounds) || !reflect.DeepEqual(f.MinLength, o.MinLength) ||
		!reflect.DeepEqual(f.MaxLength, o.MaxLength) || !reflect.DeepEqual(f.In, o.In) ||
		!reflect.DeepEqual(f.Default, o.Default) {
		return false
	}
	if len(f.Checks) != len(o.Checks) {
		return false
	}
	for i := range f.Checks {
		a, b := f.Checks[i], o.Checks[i]
		if a.Name != b.Name || !reflect.DeepEqual(f.CheckColumns(a), o.CheckColumns(b)) {
			return false
		}
		if reflect.ValueOf(a.Predicate).Pointer() != reflect.ValueOf(b.Predicate).Pointer() {
			return false
		}
	}
	return true
}
