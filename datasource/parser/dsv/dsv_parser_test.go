package dsv

import (
	"strings"
	"testing"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/schema"
	"github.com/go-sif/patina/table"
	"github.com/go-sif/patina/validate"
	"github.com/stretchr/testify/require"
)

const products = `# exported from the warehouse
id|name|zone|received
1|Apple|dry|2021-03-04
2|Milk|cold|null
3|Ice|frozen|2021-03-06
`

func createProductSchema(t *testing.T) patina.Schema {
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true},
		patina.Field{Name: "name", Type: &patina.StringType{}},
		patina.Field{Name: "zone", Type: &patina.EnumType{Values: []string{"dry", "cold", "frozen"}}},
		patina.Field{Name: "received", Type: &patina.DateType{}, Nullable: true},
	)
	require.Nil(t, err)
	return s.Named("Product")
}

func TestDSVParser(t *testing.T) {
	s := createProductSchema(t)
	parser := CreateParser(&ParserConf{
		Delimiter:   '|',
		Comment:     '#',
		NilValue:    "null",
		ColumnTypes: ColumnTypesFor(s),
	})
	tbl, err := parser.Parse(strings.NewReader(products))
	require.Nil(t, err)
	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, []string{"id", "name", "zone", "received"}, tbl.ColumnNames())
	rows, err := table.Rows(tbl)
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(1), "Apple", "dry", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)}, rows[0])
	require.Nil(t, rows[1][3])
	require.Nil(t, validate.Table(s, tbl))
}

func TestDSVParserDefaultsToStrings(t *testing.T) {
	parser := CreateParser(&ParserConf{
		HeaderLines: 1,
		ColumnNames: []string{"id", "name"},
	})
	tbl, err := parser.Parse(strings.NewReader("ignored\n1,Apple\n2,\n"))
	require.Nil(t, err)
	require.Equal(t, []patina.ColumnType{&patina.VarStringColumnType{}, &patina.VarStringColumnType{}}, tbl.ColumnTypes())
	col, err := tbl.Column("name")
	require.Nil(t, err)
	require.True(t, col.IsNil(1))

	// string-typed ids are reported by the validator, not the parser
	s := createProductSchema(t)
	rep := validate.ValidateTable(s, tbl, validate.Lenient())
	require.Equal(t, "wrong_type", rep.Failures[0].Kind.String())
}

func TestDSVParserErrors(t *testing.T) {
	parser := CreateParser(&ParserConf{
		ColumnTypes: map[string]patina.ColumnType{"id": &patina.Int8ColumnType{}},
	})
	_, err := parser.Parse(strings.NewReader("id\n1\n300\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Row 1: Column id")

	_, err = parser.Parse(strings.NewReader(""))
	require.NotNil(t, err)

	_, err = parser.Parse(strings.NewReader("a,b\n1,2,3\n"))
	require.NotNil(t, err)
}
