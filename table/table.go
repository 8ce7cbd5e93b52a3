package table

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
)

// table is an in-memory, immutable, columnar Table
type table struct {
	columns []*column
	index   map[string]int
	numRows int
}

// CreateTable is a factory for Tables. All Columns must have the same length and distinct names.
func CreateTable(cols ...patina.Column) (patina.Table, error) {
	t := &table{
		columns: make([]*column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, exists := t.index[c.Name()]; exists {
			return nil, fmt.Errorf("Table already contains column with name %s", c.Name())
		}
		if i == 0 {
			t.numRows = c.Len()
		} else if c.Len() != t.numRows {
			return nil, fmt.Errorf("Column %s has %d rows, expected %d", c.Name(), c.Len(), t.numRows)
		}
		t.index[c.Name()] = len(t.columns)
		t.columns = append(t.columns, toColumn(c))
	}
	return t, nil
}

// toColumn adapts any patina.Column to the internal representation
func toColumn(c patina.Column) *column {
	if impl, ok := c.(*column); ok {
		return impl
	}
	values := make([]interface{}, c.Len())
	for i := range values {
		if !c.IsNil(i) {
			values[i] = c.Get(i)
		}
	}
	return &column{name: c.Name(), colType: c.Type(), values: values}
}

// FromRows builds a Table from row-oriented data, converting every value with ConvertValue
func FromRows(names []string, types []patina.ColumnType, rows [][]interface{}) (patina.Table, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("Received %d column names but %d column types", len(names), len(types))
	}
	cols := make([]patina.Column, len(names))
	for j, name := range names {
		values := make([]interface{}, len(rows))
		for i, row := range rows {
			if len(row) != len(names) {
				return nil, fmt.Errorf("Row %d has %d values, expected %d", i, len(row), len(names))
			}
			values[i] = row[j]
		}
		col, err := ConvertColumn(name, types[j], values)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return CreateTable(cols...)
}

// FromRecords builds a Table from maps of values, with one column per Schema Field using the
// default storage type of each Field. Absent keys become nulls.
func FromRecords(schema patina.Schema, records []map[string]interface{}) (patina.Table, error) {
	names := schema.FieldNames()
	types := make([]patina.ColumnType, len(names))
	schema.ForEachField(func(idx int, f patina.Field) error {
		types[idx] = f.Type.StorageType()
		return nil
	})
	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		rows[i] = make([]interface{}, len(names))
		for j, name := range names {
			rows[i][j] = rec[name]
		}
	}
	return FromRows(names, types, rows)
}

// ColumnNames returns the names of all columns, in storage order
func (t *table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// ColumnTypes returns the types of all columns, in storage order
func (t *table) ColumnTypes() []patina.ColumnType {
	types := make([]patina.ColumnType, len(t.columns))
	for i, c := range t.columns {
		types[i] = c.colType
	}
	return types
}

// NumRows returns the number of rows in this Table
func (t *table) NumRows() int {
	return t.numRows
}

// HasColumn returns true iff this Table contains a column with the given name
func (t *table) HasColumn(colName string) bool {
	_, ok := t.index[colName]
	return ok
}

// Column returns the named Column
func (t *table) Column(colName string) (patina.Column, error) {
	idx, ok := t.index[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	return t.columns[idx], nil
}

// Rows returns the values of a Table in row-oriented form
func Rows(t patina.Table) ([][]interface{}, error) {
	names := t.ColumnNames()
	cols := make([]patina.Column, len(names))
	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	rows := make([][]interface{}, t.NumRows())
	for i := range rows {
		rows[i] = make([]interface{}, len(cols))
		for j, col := range cols {
			if !col.IsNil(i) {
				rows[i][j] = col.Get(i)
			}
		}
	}
	return rows, nil
}

// Select returns a Table containing only the named columns, in the order given
func Select(t patina.Table, colNames ...string) (patina.Table, error) {
	cols := make([]patina.Column, len(colNames))
	for i, name := range colNames {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return CreateTable(cols...)
}

// Rename returns a Table whose columns are prefixed and suffixed, sharing the original values
func Rename(t patina.Table, prefix string, suffix string) (patina.Table, error) {
	names := t.ColumnNames()
	cols := make([]patina.Column, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = toColumn(col).renamed(prefix + name + suffix)
	}
	return CreateTable(cols...)
}

// ToString produces a string representation of a Table, one row per line
func ToString(t patina.Table) string {
	var res strings.Builder
	names := t.ColumnNames()
	types := t.ColumnTypes()
	fmt.Fprintln(&res, strings.Join(names, "\t"))
	rows, err := Rows(t)
	if err != nil {
		return err.Error()
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				cells[j] = "null"
			} else {
				cells[j] = types[j].ToString(v)
			}
		}
		fmt.Fprintln(&res, strings.Join(cells, "\t"))
	}
	return res.String()
}

// Concat appends the rows of several Tables which share the same column names and types
func Concat(tables ...patina.Table) (patina.Table, error) {
	if len(tables) == 0 {
		return CreateTable()
	}
	names := tables[0].ColumnNames()
	types := tables[0].ColumnTypes()
	values := make([][]interface{}, len(names))
	for _, t := range tables {
		if !reflect.DeepEqual(t.ColumnNames(), names) {
			return nil, fmt.Errorf("Cannot concatenate tables with columns %v and %v", names, t.ColumnNames())
		}
		for j, name := range names {
			col, err := t.Column(name)
			if err != nil {
				return nil, err
			}
			if patina.ColumnTypeName(col.Type()) != patina.ColumnTypeName(types[j]) {
				return nil, fmt.Errorf("Column %s has type %s, expected %s", name, patina.ColumnTypeName(col.Type()), patina.ColumnTypeName(types[j]))
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsNil(i) {
					values[j] = append(values[j], nil)
				} else {
					values[j] = append(values[j], col.Get(i))
				}
			}
		}
	}
	cols := make([]patina.Column, len(names))
	for j, name := range names {
		cols[j] = &column{name: name, colType: types[j], values: values[j]}
	}
	return CreateTable(cols...)
}
