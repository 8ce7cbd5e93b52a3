package compute

import (
	"math"
	"regexp"
	"unicode/utf8"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/patina"
)

// NullMask is set wherever col holds a null
func NullMask(col patina.Column) patina.Mask {
	res := make(patina.Mask, col.Len())
	for i := range res {
		res[i] = col.IsNil(i)
	}
	return res
}

// valueMask applies fn to every non-null value of col. Nulls are never set.
func valueMask(col patina.Column, fn func(v interface{}) bool) patina.Mask {
	res := make(patina.Mask, col.Len())
	for i := range res {
		if !col.IsNil(i) {
			res[i] = fn(col.Get(i))
		}
	}
	return res
}

// OutOfBounds is set wherever a non-null value of col lies outside bounds
func OutOfBounds(col patina.Column, bounds *patina.Bounds) (patina.Mask, error) {
	var cmpErr error
	mask := valueMask(col, func(v interface{}) bool {
		violates, err := ViolatesBounds(v, bounds)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return violates
	})
	return mask, cmpErr
}

// ViolatesBounds returns true iff v lies outside bounds
func ViolatesBounds(v interface{}, bounds *patina.Bounds) (bool, error) {
	if bounds == nil || (bounds.Min == nil && bounds.Max == nil) {
		return false, nil
	}
	// NaN orders after every number
	if n, ok := toNumber(v); ok && n.isFloat && math.IsNaN(n.f) {
		return true, nil
	}
	if bounds.Min != nil {
		c, err := Compare(v, bounds.Min)
		if err != nil {
			return false, err
		}
		if c < 0 || (c == 0 && bounds.ExclusiveMin) {
			return true, nil
		}
	}
	if bounds.Max != nil {
		c, err := Compare(v, bounds.Max)
		if err != nil {
			return false, err
		}
		if c > 0 || (c == 0 && bounds.ExclusiveMax) {
			return true, nil
		}
	}
	return false, nil
}

// NotMultipleOf is set wherever a non-null value of col is not a multiple of m
func NotMultipleOf(col patina.Column, m float64) patina.Mask {
	return valueMask(col, func(v interface{}) bool {
		return !IsMultipleOf(v, m)
	})
}

// ViolatesLength returns true iff the rune length of s lies outside [min, max]. Either bound may be nil.
func ViolatesLength(s string, min *int, max *int) bool {
	l := utf8.RuneCountInString(s)
	return (min != nil && l < *min) || (max != nil && l > *max)
}

// LengthOutOfBounds is set wherever a non-null string value of col violates the length bounds
func LengthOutOfBounds(col patina.Column, min *int, max *int) patina.Mask {
	return valueMask(col, func(v interface{}) bool {
		s, ok := v.(string)
		return !ok || ViolatesLength(s, min, max)
	})
}

// NotMatching is set wherever a non-null string value of col is not matched by re
func NotMatching(col patina.Column, re *regexp.Regexp) patina.Mask {
	return valueMask(col, func(v interface{}) bool {
		s, ok := v.(string)
		return !ok || !re.MatchString(s)
	})
}

// ValueSet is a hashed set of scalar values, keyed by Key
type ValueSet map[string]struct{}

// NewValueSet builds a ValueSet from values
func NewValueSet(values []interface{}) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[Key(v)] = struct{}{}
	}
	return set
}

// Contains returns true iff v is a member of this ValueSet
func (s ValueSet) Contains(v interface{}) bool {
	_, ok := s[Key(v)]
	return ok
}

// NotIn is set wherever a non-null value of col is absent from every one of the given sets
func NotIn(col patina.Column, sets ...ValueSet) patina.Mask {
	return valueMask(col, func(v interface{}) bool {
		for _, set := range sets {
			if !set.Contains(v) {
				return true
			}
		}
		return false
	})
}

// Duplicated is set for every non-null row whose value occurs more than once in col.
// Rows are bucketed by the xxhash of their Key, and only rows sharing a bucket are compared exactly.
func Duplicated(col patina.Column) patina.Mask {
	res := make(patina.Mask, col.Len())
	buckets := make(map[uint64][]int, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNil(i) {
			continue
		}
		h := xxhash.Sum64String(Key(col.Get(i)))
		buckets[h] = append(buckets[h], i)
	}
	for _, rows := range buckets {
		if len(rows) < 2 {
			continue
		}
		// resolve hash collisions by grouping on the full key
		groups := make(map[string][]int, 1)
		for _, row := range rows {
			k := Key(col.Get(row))
			groups[k] = append(groups[k], row)
		}
		for _, group := range groups {
			if len(group) < 2 {
				continue
			}
			for _, row := range group {
				res[row] = true
			}
		}
	}
	return res
}

// Sample returns up to limit distinct values from the set rows of mask, in order of first
// occurrence, along with up to limit set row positions
func Sample(col patina.Column, mask patina.Mask, limit int) (values []interface{}, rows []int) {
	values = []interface{}{}
	seen := make(map[string]struct{})
	for i, set := range mask {
		if !set || col.IsNil(i) || len(values) >= limit {
			continue
		}
		v := col.Get(i)
		k := Key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, v)
	}
	return values, mask.Indices(limit)
}

// PermittedSets returns the constant sets a value of f must belong to. Enum values count as one.
func PermittedSets(f patina.Field) []ValueSet {
	var sets []ValueSet
	if e, ok := f.Type.(*patina.EnumType); ok {
		values := make([]interface{}, len(e.Values))
		for i, v := range e.Values {
			values[i] = v
		}
		sets = append(sets, NewValueSet(values))
	}
	if f.In != nil {
		sets = append(sets, NewValueSet(f.In))
	}
	return sets
}
