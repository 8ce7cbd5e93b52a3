package jsonl

import (
	"strings"
	"testing"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/schema"
	"github.com/go-sif/patina/table"
	"github.com/go-sif/patina/validate"
	"github.com/stretchr/testify/require"
)

const people = `{"name": "Sean", "meta": { "index": 1, "first": "Sean", "last": "McIntyre"}}
{"name": "Chris", "meta": { "index": 3, "first": "Chris", "last": "Dickson"}}
# comment
{"name": "Phil", "meta": { "index": 2, "first": "Phil", "last": "Laliberté"}}
{"name": "Fahd", "meta": { "index": 4, "first": "Fahd"}}
`

func TestJSONLParser(t *testing.T) {
	parser := CreateParser(&ParserConf{
		Comment:     '#',
		ColumnNames: []string{"name", "meta.index", "meta.last"},
		ColumnTypes: map[string]patina.ColumnType{
			"name":       &patina.VarStringColumnType{},
			"meta.index": &patina.Int8ColumnType{},
		},
	})
	tbl, err := parser.Parse(strings.NewReader(people))
	require.Nil(t, err)
	require.Equal(t, 4, tbl.NumRows())
	rows, err := table.Rows(tbl)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"Phil", int8(2), "Laliberté"}, rows[2])
	require.Equal(t, []interface{}{"Fahd", int8(4), nil}, rows[3])
}

func TestJSONLParserInfersColumns(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(`{"id": 1, "price": 2, "organic": true}
{"id": 2, "price": 2.5, "name": "Milk", "tags": ["cold"]}
`))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "price", "organic", "name", "tags"}, tbl.ColumnNames())
	require.Equal(t, []patina.ColumnType{
		&patina.Int64ColumnType{},
		&patina.Float64ColumnType{},
		&patina.BoolColumnType{},
		&patina.VarStringColumnType{},
		&patina.VarStringColumnType{},
	}, tbl.ColumnTypes())
	col, err := tbl.Column("tags")
	require.Nil(t, err)
	require.True(t, col.IsNil(0))
	require.Equal(t, `["cold"]`, col.Get(1))

	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true},
		patina.Field{Name: "price", Type: &patina.FloatType{}, Bounds: &patina.Bounds{Min: 0}},
		patina.Field{Name: "organic", Type: &patina.BooleanType{}, Nullable: true},
		patina.Field{Name: "name", Type: &patina.StringType{}, Nullable: true},
	)
	require.Nil(t, err)
	require.Nil(t, validate.Table(s, tbl, validate.Lenient()))
}

func TestJSONLParserReportsEveryError(t *testing.T) {
	parser := CreateParser(&ParserConf{
		ColumnNames: []string{"id"},
		ColumnTypes: map[string]patina.ColumnType{"id": &patina.Int8ColumnType{}},
	})
	_, err := parser.Parse(strings.NewReader("{\"id\": 1}\n{\"id\": \nnot json\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Line 1")
	require.Contains(t, err.Error(), "Line 2")

	_, err = parser.Parse(strings.NewReader("{\"id\": \"one\"}\n{\"id\": 1000}\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Row 0: Column id was not a number")
	require.Contains(t, err.Error(), "Row 1: Column id")
}
