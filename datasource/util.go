package datasource

import (
	"fmt"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/table"
)

// Load analyzes a DataSource and parses every TableLoader it produces,
// concatenating the results into a single Table
func Load(source patina.DataSource, parser patina.DataSourceParser) (patina.Table, error) {
	loaders, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	tables := make([]patina.Table, 0, len(loaders))
	for _, loader := range loaders {
		logging.Debugf("loading %s", loader.ToString())
		t, err := loader.Load(parser)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loader.ToString(), err)
		}
		tables = append(tables, t)
	}
	return table.Concat(tables...)
}
