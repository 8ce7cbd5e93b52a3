package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/patina"
)

// DataSource is a set of buffers containing data which will be validated against a Schema
type DataSource struct {
	data [][]byte
}

// CreateDataSource is a factory for DataSources. Each buffer is parsed into its own Table.
func CreateDataSource(data [][]byte) *DataSource {
	return &DataSource{data}
}

// Analyze returns a TableLoader for each buffer
func (fs *DataSource) Analyze() ([]patina.TableLoader, error) {
	loaders := make([]patina.TableLoader, len(fs.data))
	for i := range fs.data {
		loaders[i] = &TableLoader{idx: i, source: fs}
	}
	return loaders, nil
}

// TableLoader is capable of loading a Table of data from a buffer
type TableLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this TableLoader
func (tl *TableLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", tl.idx)
}

// Load parses the buffer into a Table
func (tl *TableLoader) Load(parser patina.DataSourceParser) (patina.Table, error) {
	return parser.Parse(bytes.NewReader(tl.source.data[tl.idx]))
}
