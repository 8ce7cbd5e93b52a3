package memory

import (
	"testing"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/datasource"
	"github.com/go-sif/patina/datasource/parser/jsonl"
	"github.com/go-sif/patina/schema"
	"github.com/go-sif/patina/validate"
	"github.com/stretchr/testify/require"
)

func TestMemoryDataSource(t *testing.T) {
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true},
		patina.Field{Name: "name", Type: &patina.StringType{}},
	)
	require.Nil(t, err)
	source := CreateDataSource([][]byte{
		[]byte(`{"id": 1, "name": "Apple"}` + "\n" + `{"id": 2, "name": "Milk"}`),
		[]byte(`{"id": 2, "name": "Ice"}`),
	})
	loaders, err := source.Analyze()
	require.Nil(t, err)
	require.Equal(t, "Memory loader index: 1", loaders[1].ToString())

	parser := jsonl.CreateParser(&jsonl.ParserConf{
		ColumnNames: []string{"id", "name"},
		ColumnTypes: map[string]patina.ColumnType{"id": &patina.Int64ColumnType{}, "name": &patina.VarStringColumnType{}},
	})
	tbl, err := datasource.Load(source, parser)
	require.Nil(t, err)
	require.Equal(t, 3, tbl.NumRows())

	rep := validate.ValidateTable(s, tbl)
	require.Len(t, rep.Failures, 1)
	require.Equal(t, "id", rep.Failures[0].Column)
	require.Equal(t, 2, rep.Failures[0].Count)
}
