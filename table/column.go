package table

import (
	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
)

// column is an immutable vector of values of a single ColumnType, where nil represents null
type column struct {
	name    string
	colType patina.ColumnType
	values  []interface{}
}

// CreateColumn is a factory for Columns. Each value must be nil or a valid value
// of colType (see ConvertValue for the accepted Go types). values is copied.
func CreateColumn(name string, colType patina.ColumnType, values []interface{}) (patina.Column, error) {
	stored := make([]interface{}, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		if !IsValidValue(colType, v) {
			return nil, errors.IncompatibleValueError{Name: name, Row: i, Value: v, TypeName: patina.ColumnTypeName(colType)}
		}
		stored[i] = v
	}
	return &column{name: name, colType: colType, values: stored}, nil
}

// ConvertColumn is a factory for Columns which first converts each value to the
// Go representation of colType with ConvertValue
func ConvertColumn(name string, colType patina.ColumnType, values []interface{}) (patina.Column, error) {
	stored := make([]interface{}, len(values))
	for i, v := range values {
		cv, err := ConvertValue(colType, v)
		if err != nil {
			return nil, errors.IncompatibleValueError{Name: name, Row: i, Value: v, TypeName: patina.ColumnTypeName(colType)}
		}
		stored[i] = cv
	}
	return &column{name: name, colType: colType, values: stored}, nil
}

// Name returns the name of this Column
func (c *column) Name() string {
	return c.name
}

// Type returns the ColumnType of this Column
func (c *column) Type() patina.ColumnType {
	return c.colType
}

// Len returns the number of rows in this Column
func (c *column) Len() int {
	return len(c.values)
}

// IsNil returns true iff the value at row is null
func (c *column) IsNil(row int) bool {
	return c.values[row] == nil
}

// Get returns the value at row, or nil
func (c *column) Get(row int) interface{} {
	return c.values[row]
}

// renamed returns a view of this Column under a different name, sharing its values
func (c *column) renamed(name string) *column {
	return &column{name: name, colType: c.colType, values: c.values}
}
