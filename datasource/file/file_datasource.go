package file

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-sif/patina"
)

// DataSource is a set of files containing data which will be validated against a Schema
type DataSource struct {
	glob string
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(glob string) *DataSource {
	return &DataSource{glob}
}

// Analyze returns a TableLoader for every file matching this DataSource's glob, in lexical order
func (fs *DataSource) Analyze() ([]patina.TableLoader, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	loaders := make([]patina.TableLoader, len(matches))
	for i, path := range matches {
		loaders[i] = &TableLoader{path: path}
	}
	return loaders, nil
}
