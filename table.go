package patina

// Column is a read-only vector of values of a single ColumnType. Null values
// are reported by IsNil, and Get returns nil for them.
type Column interface {
	Name() string            // Name returns the name of this Column within its Table
	Type() ColumnType        // Type returns the storage ColumnType of this Column
	Len() int                // Len returns the number of rows in this Column
	IsNil(row int) bool      // IsNil returns true iff the value at row is null
	Get(row int) interface{} // Get returns the value at row, or nil
}

// Table is the minimal capability a tabular dataset must expose to be validated.
// Tables are never mutated by Patina.
type Table interface {
	ColumnNames() []string                 // ColumnNames returns the names of all columns, in storage order
	ColumnTypes() []ColumnType             // ColumnTypes returns the types of all columns, in storage order
	NumRows() int                          // NumRows returns the number of rows in this Table
	HasColumn(colName string) bool         // HasColumn returns true iff this Table contains a column with the given name
	Column(colName string) (Column, error) // Column returns the named Column
}
