package patina

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SemanticType describes the logical type of a Field, independent of how a
// Table chooses to store it. Each SemanticType accepts a fixed set of storage
// ColumnTypes and knows how to coerce plain Go values into its canonical form.
type SemanticType interface {
	Name() string                                // Name returns the lower-case name of this type, e.g. "integer"
	Accepts(colType ColumnType) bool             // Accepts returns true iff values of this type may be stored in colType
	StorageType() ColumnType                     // StorageType returns the default ColumnType for values of this type
	Orderable() bool                             // Orderable returns true iff Bounds are meaningful for this type
	Normalize(v interface{}) (interface{}, bool) // Normalize coerces v into the canonical Go representation of this type
}

// IntegerType is the SemanticType of whole numbers. Canonical values are int64.
type IntegerType struct{}

// Name returns "integer"
func (t *IntegerType) Name() string { return "integer" }

// Accepts any signed or unsigned fixed-width integer storage
func (t *IntegerType) Accepts(colType ColumnType) bool {
	switch colType.(type) {
	case *Int8ColumnType, *Int16ColumnType, *Int32ColumnType, *Int64ColumnType,
		*Uint8ColumnType, *Uint16ColumnType, *Uint32ColumnType, *Uint64ColumnType:
		return true
	}
	return false
}

// StorageType returns an Int64ColumnType
func (t *IntegerType) StorageType() ColumnType { return &Int64ColumnType{} }

// Orderable returns true
func (t *IntegerType) Orderable() bool { return true }

// Normalize converts any Go integer (or integral float) to int64
func (t *IntegerType) Normalize(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return int64(n), true
		}
	case float32:
		f := float64(n)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), true
		}
	}
	return nil, false
}

func uintToInt64(u uint64) (interface{}, bool) {
	if u > math.MaxInt64 {
		return nil, false
	}
	return int64(u), true
}

// FloatType is the SemanticType of real numbers. Canonical values are float64.
type FloatType struct{}

// Name returns "float"
func (t *FloatType) Name() string { return "float" }

// Accepts 32- or 64-bit float storage
func (t *FloatType) Accepts(colType ColumnType) bool {
	switch colType.(type) {
	case *Float32ColumnType, *Float64ColumnType:
		return true
	}
	return false
}

// StorageType returns a Float64ColumnType
func (t *FloatType) StorageType() ColumnType { return &Float64ColumnType{} }

// Orderable returns true
func (t *FloatType) Orderable() bool { return true }

// Normalize converts floats and integers to float64
func (t *FloatType) Normalize(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := (&IntegerType{}).Normalize(v); ok {
		return float64(i.(int64)), true
	}
	return nil, false
}

// StringType is the SemanticType of free text
type StringType struct{}

// Name returns "string"
func (t *StringType) Name() string { return "string" }

// Accepts fixed- or variable-length string storage
func (t *StringType) Accepts(colType ColumnType) bool {
	switch colType.(type) {
	case *VarStringColumnType, *StringColumnType:
		return true
	}
	return false
}

// StorageType returns a VarStringColumnType
func (t *StringType) StorageType() ColumnType { return &VarStringColumnType{} }

// Orderable returns false. String length is constrained with MinLength and MaxLength instead.
func (t *StringType) Orderable() bool { return false }

// Normalize accepts strings only
func (t *StringType) Normalize(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	return s, ok
}

// BooleanType is the SemanticType of truth values
type BooleanType struct{}

// Name returns "boolean"
func (t *BooleanType) Name() string { return "boolean" }

// Accepts bool storage
func (t *BooleanType) Accepts(colType ColumnType) bool {
	_, ok := colType.(*BoolColumnType)
	return ok
}

// StorageType returns a BoolColumnType
func (t *BooleanType) StorageType() ColumnType { return &BoolColumnType{} }

// Orderable returns false
func (t *BooleanType) Orderable() bool { return false }

// Normalize accepts bools only
func (t *BooleanType) Normalize(v interface{}) (interface{}, bool) {
	b, ok := v.(bool)
	return b, ok
}

// EnumType is the SemanticType of a closed set of string values. Values also acts
// as an implicit constant set for the Field.
type EnumType struct {
	Values []string
}

// Name returns "enum"
func (t *EnumType) Name() string { return "enum" }

// Accepts categorical storage
func (t *EnumType) Accepts(colType ColumnType) bool {
	_, ok := colType.(*CategoricalColumnType)
	return ok
}

// StorageType returns a CategoricalColumnType
func (t *EnumType) StorageType() ColumnType { return &CategoricalColumnType{} }

// Orderable returns false
func (t *EnumType) Orderable() bool { return false }

// Normalize accepts strings only. Membership is checked separately.
func (t *EnumType) Normalize(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	return s, ok
}

// Contains returns true iff value is one of the enumerated values
func (t *EnumType) Contains(value string) bool {
	for _, v := range t.Values {
		if v == value {
			return true
		}
	}
	return false
}

// DateType is the SemanticType of calendar dates. Canonical values are
// time.Time at midnight UTC.
type DateType struct{}

// Name returns "date"
func (t *DateType) Name() string { return "date" }

// Accepts date storage
func (t *DateType) Accepts(colType ColumnType) bool {
	_, ok := colType.(*DateColumnType)
	return ok
}

// StorageType returns a DateColumnType
func (t *DateType) StorageType() ColumnType { return &DateColumnType{} }

// Orderable returns true
func (t *DateType) Orderable() bool { return true }

// Normalize accepts time.Time values and strings formatted as DateLayout
func (t *DateType) Normalize(v interface{}) (interface{}, bool) {
	switch d := v.(type) {
	case time.Time:
		return TruncateToDate(d), true
	case string:
		parsed, err := time.Parse(DateLayout, d)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
	return nil, false
}

// TruncateToDate drops the time-of-day portion of t, returning midnight UTC of the same calendar day
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatetimeType is the SemanticType of instants in time
type DatetimeType struct{}

// Name returns "datetime"
func (t *DatetimeType) Name() string { return "datetime" }

// Accepts time storage
func (t *DatetimeType) Accepts(colType ColumnType) bool {
	_, ok := colType.(*TimeColumnType)
	return ok
}

// StorageType returns a TimeColumnType
func (t *DatetimeType) StorageType() ColumnType { return &TimeColumnType{} }

// Orderable returns true
func (t *DatetimeType) Orderable() bool { return true }

// Normalize accepts time.Time values and RFC3339 strings
func (t *DatetimeType) Normalize(v interface{}) (interface{}, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		parsed, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
	return nil, false
}

// ParseSemanticType resolves a SemanticType from its Name. Enum values are supplied separately.
func ParseSemanticType(name string, enumValues []string) (SemanticType, error) {
	switch strings.ToLower(name) {
	case "integer", "int":
		return &IntegerType{}, nil
	case "float", "number":
		return &FloatType{}, nil
	case "string", "str":
		return &StringType{}, nil
	case "boolean", "bool":
		return &BooleanType{}, nil
	case "enum":
		return &EnumType{Values: enumValues}, nil
	case "date":
		return &DateType{}, nil
	case "datetime":
		return &DatetimeType{}, nil
	}
	return nil, fmt.Errorf("Unknown semantic type %s", name)
}
