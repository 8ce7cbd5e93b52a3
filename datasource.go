package patina

import "io"

// DataSourceParser turns raw data, such as a file of delimiter-separated values, into a Table
type DataSourceParser interface {
	Parse(r io.Reader) (Table, error)
}

// TableLoader is a description of how to load one Table of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic.
type TableLoader interface {
	ToString() string                            // for logging
	Load(parser DataSourceParser) (Table, error) // how to actually load data
}

// DataSource is a source of data which will be validated against a Schema.
// It represents information about how to load data from the source as one or more Tables,
// which share the same columns.
type DataSource interface {
	Analyze() ([]TableLoader, error)
}
