package patina

import (
	"fmt"
	"strings"
	"time"
)

// ColumnType is an interface which is implemented to define the storage type of a Column
// within a Table. Patina provides a variety of built-in types, mirroring the storage
// widths commonly exposed by columnar table implementations.
type ColumnType interface {
	Size() int                     // returns size in bytes of a column type. Variable-length types return 0.
	ToString(v interface{}) string // produces a string representation of a value of this type
}

// IsVariableLength returns true iff colType has no fixed storage width
func IsVariableLength(colType ColumnType) bool {
	return colType.Size() == 0
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Size in bytes of a BoolColumn
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Uint8ColumnType is a column type which stores a uint8 value
type Uint8ColumnType struct{}

// Size in bytes of a Uint8Column
func (b *Uint8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a Uint8ColumnType value
func (b *Uint8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint8))
}

// Uint16ColumnType is a column type which stores a uint16 value
type Uint16ColumnType struct{}

// Size in bytes of a Uint16Column
func (b *Uint16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a value of a Uint16ColumnType value
func (b *Uint16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint16))
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

// Size in bytes of a Uint32Column
func (b *Uint32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

// Size in bytes of a Uint64Column
func (b *Uint64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Int8ColumnType is a column type which stores a int8 value
type Int8ColumnType struct{}

// Size in bytes of a Int8Column
func (b *Int8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a Int8ColumnType value
func (b *Int8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int8))
}

// Int16ColumnType is a column type which stores a int16 value
type Int16ColumnType struct{}

// Size in bytes of a Int16Column
func (b *Int16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a value of a Int16ColumnType value
func (b *Int16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int16))
}

// Int32ColumnType is a column type which stores a int32 value
type Int32ColumnType struct{}

// Size in bytes of a Int32Column
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores a int64 value
type Int64ColumnType struct{}

// Size in bytes of a Int64Column
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// Size in bytes of a Float32Column
func (b *Float32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Size in bytes of a Float64Column
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value. Format is
// used by text parsers to interpret values, and defaults to time.RFC3339.
type TimeColumnType struct {
	Format string
}

// Size in bytes of a TimeColumn
func (b *TimeColumnType) Size() int {
	return 15
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).Format(b.Layout()))
}

// Layout returns the time layout for this column, falling back to time.RFC3339
func (b *TimeColumnType) Layout() string {
	if b.Format == "" {
		return time.RFC3339
	}
	return b.Format
}

// DateColumnType is a column type which stores a calendar date as a time.Time at midnight UTC
type DateColumnType struct{}

// DateLayout is the textual layout of a date
const DateLayout = "2006-01-02"

// Size in bytes of a DateColumn
func (b *DateColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a DateColumnType value
func (b *DateColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).Format(DateLayout))
}

// StringColumnType is a column type which stores fixed-length strings. Useful for hashes, etc.
type StringColumnType struct {
	Length int
}

// Size in bytes of a StringColumn
func (b *StringColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a value of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Size in bytes of the variable-length VarStringColumn
func (b *VarStringColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// CategoricalColumnType is a column type which stores dictionary-encoded string values
type CategoricalColumnType struct{}

// Size in bytes of the variable-length CategoricalColumn
func (b *CategoricalColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a CategoricalColumnType value
func (b *CategoricalColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// ColumnTypeName returns a stable textual name for a built-in ColumnType,
// suitable for persisting alongside serialized data
func ColumnTypeName(colType ColumnType) string {
	switch ct := colType.(type) {
	case *BoolColumnType:
		return "bool"
	case *Uint8ColumnType:
		return "uint8"
	case *Uint16ColumnType:
		return "uint16"
	case *Uint32ColumnType:
		return "uint32"
	case *Uint64ColumnType:
		return "uint64"
	case *Int8ColumnType:
		return "int8"
	case *Int16ColumnType:
		return "int16"
	case *Int32ColumnType:
		return "int32"
	case *Int64ColumnType:
		return "int64"
	case *Float32ColumnType:
		return "float32"
	case *Float64ColumnType:
		return "float64"
	case *TimeColumnType:
		if ct.Format != "" {
			return "time:" + ct.Format
		}
		return "time"
	case *DateColumnType:
		return "date"
	case *StringColumnType:
		return fmt.Sprintf("string:%d", ct.Length)
	case *VarStringColumnType:
		return "varstring"
	case *CategoricalColumnType:
		return "categorical"
	default:
		return fmt.Sprintf("%T", colType)
	}
}

// ParseColumnType is the inverse of ColumnTypeName
func ParseColumnType(name string) (ColumnType, error) {
	switch {
	case name == "bool":
		return &BoolColumnType{}, nil
	case name == "uint8":
		return &Uint8ColumnType{}, nil
	case name == "uint16":
		return &Uint16ColumnType{}, nil
	case name == "uint32":
		return &Uint32ColumnType{}, nil
	case name == "uint64":
		return &Uint64ColumnType{}, nil
	case name == "int8":
		return &Int8ColumnType{}, nil
	case name == "int16":
		return &Int16ColumnType{}, nil
	case name == "int32":
		return &Int32ColumnType{}, nil
	case name == "int64":
		return &Int64ColumnType{}, nil
	case name == "float32":
		return &Float32ColumnType{}, nil
	case name == "float64":
		return &Float64ColumnType{}, nil
	case name == "time":
		return &TimeColumnType{}, nil
	case strings.HasPrefix(name, "time:"):
		return &TimeColumnType{Format: strings.TrimPrefix(name, "time:")}, nil
	case name == "date":
		return &DateColumnType{}, nil
	case strings.HasPrefix(name, "string:"):
		var length int
		if _, err := fmt.Sscanf(name, "string:%d", &length); err != nil {
			return nil, fmt.Errorf("Invalid fixed-length string column type %s", name)
		}
		return &StringColumnType{Length: length}, nil
	case name == "varstring":
		return &VarStringColumnType{}, nil
	case name == "categorical":
		return &CategoricalColumnType{}, nil
	}
	return nil, fmt.Errorf("Unknown column type %s", name)
}
