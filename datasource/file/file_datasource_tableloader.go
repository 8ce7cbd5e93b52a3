package file

import (
	"fmt"
	"os"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/logging"
)

// TableLoader is capable of loading a Table of data from a file
type TableLoader struct {
	path string
}

// ToString returns a string representation of this TableLoader
func (tl *TableLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", tl.path)
}

// Load parses the file into a Table
func (tl *TableLoader) Load(parser patina.DataSourceParser) (patina.Table, error) {
	f, err := os.Open(tl.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warnf("couldn't close file %s: %v", tl.path, err)
		}
	}()
	t, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tl.path, err)
	}
	return t, nil
}
