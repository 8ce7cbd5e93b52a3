package table

import (
	"testing"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/schema"
	"github.com/stretchr/testify/require"
)

func TestCreateColumn(t *testing.T) {
	col, err := CreateColumn("id", &patina.Int32ColumnType{}, []interface{}{int32(1), nil, int32(3)})
	require.Nil(t, err)
	require.Equal(t, 3, col.Len())
	require.Equal(t, "id", col.Name())
	require.False(t, col.IsNil(0))
	require.True(t, col.IsNil(1))
	require.Nil(t, col.Get(1))
	require.Equal(t, int32(3), col.Get(2))
}

func TestCreateColumnRejectsWrongValues(t *testing.T) {
	_, err := CreateColumn("id", &patina.Int32ColumnType{}, []interface{}{int32(1), int64(2)})
	var incompatible errors.IncompatibleValueError
	require.ErrorAs(t, err, &incompatible)
	require.Equal(t, 1, incompatible.Row)

	_, err = CreateColumn("code", &patina.StringColumnType{Length: 2}, []interface{}{"abc"})
	require.NotNil(t, err)
}

func TestConvertValue(t *testing.T) {
	v, err := ConvertValue(&patina.Int8ColumnType{}, 12)
	require.Nil(t, err)
	require.Equal(t, int8(12), v)

	_, err = ConvertValue(&patina.Int8ColumnType{}, 300)
	require.NotNil(t, err)

	v, err = ConvertValue(&patina.Uint16ColumnType{}, float64(7))
	require.Nil(t, err)
	require.Equal(t, uint16(7), v)

	_, err = ConvertValue(&patina.Uint16ColumnType{}, -1)
	require.NotNil(t, err)

	v, err = ConvertValue(&patina.Float32ColumnType{}, "1.5")
	require.Nil(t, err)
	require.Equal(t, float32(1.5), v)

	v, err = ConvertValue(&patina.DateColumnType{}, "2021-03-04")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), v)

	v, err = ConvertValue(&patina.BoolColumnType{}, "true")
	require.Nil(t, err)
	require.Equal(t, true, v)

	v, err = ConvertValue(&patina.VarStringColumnType{}, nil)
	require.Nil(t, err)
	require.Nil(t, v)
}

func TestCreateTable(t *testing.T) {
	tbl, err := FromRows(
		[]string{"id", "name"},
		[]patina.ColumnType{&patina.Int64ColumnType{}, &patina.VarStringColumnType{}},
		[][]interface{}{{1, "Apple"}, {2, nil}},
	)
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, []string{"id", "name"}, tbl.ColumnNames())
	require.True(t, tbl.HasColumn("name"))
	require.False(t, tbl.HasColumn("zone"))
	_, err = tbl.Column("zone")
	var missing errors.MissingColumnError
	require.ErrorAs(t, err, &missing)

	rows, err := Rows(tbl)
	require.Nil(t, err)
	require.Equal(t, [][]interface{}{{int64(1), "Apple"}, {int64(2), nil}}, rows)
}

func TestCreateTableMismatchedLengths(t *testing.T) {
	a, err := CreateColumn("a", &patina.BoolColumnType{}, []interface{}{true})
	require.Nil(t, err)
	b, err := CreateColumn("b", &patina.BoolColumnType{}, []interface{}{true, false})
	require.Nil(t, err)
	_, err = CreateTable(a, b)
	require.NotNil(t, err)
	_, err = CreateTable(a, a)
	require.NotNil(t, err)
}

func TestSelectAndRename(t *testing.T) {
	tbl, err := FromRows(
		[]string{"a", "b"},
		[]patina.ColumnType{&patina.Int64ColumnType{}, &patina.Int64ColumnType{}},
		[][]interface{}{{1, 2}},
	)
	require.Nil(t, err)
	sel, err := Select(tbl, "b")
	require.Nil(t, err)
	require.Equal(t, []string{"b"}, sel.ColumnNames())
	renamed, err := Rename(tbl, "x_", "")
	require.Nil(t, err)
	require.Equal(t, []string{"x_a", "x_b"}, renamed.ColumnNames())
	col, err := renamed.Column("x_b")
	require.Nil(t, err)
	require.Equal(t, int64(2), col.Get(0))
}

func TestFromRecords(t *testing.T) {
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}},
		patina.Field{Name: "name", Type: &patina.StringType{}, Nullable: true},
	)
	require.Nil(t, err)
	tbl, err := FromRecords(s, []map[string]interface{}{{"id": 1}, {"id": 2, "name": "Milk"}})
	require.Nil(t, err)
	require.Equal(t, []patina.ColumnType{&patina.Int64ColumnType{}, &patina.VarStringColumnType{}}, tbl.ColumnTypes())
	col, err := tbl.Column("name")
	require.Nil(t, err)
	require.True(t, col.IsNil(0))
	require.Equal(t, "Milk", col.Get(1))
	require.Contains(t, ToString(tbl), "\"Milk\"")
}

func TestConcat(t *testing.T) {
	a, err := FromRows([]string{"id", "name"}, []patina.ColumnType{&patina.Int64ColumnType{}, &patina.VarStringColumnType{}},
		[][]interface{}{{1, "Apple"}, {2, nil}})
	require.Nil(t, err)
	b, err := FromRows([]string{"id", "name"}, []patina.ColumnType{&patina.Int64ColumnType{}, &patina.VarStringColumnType{}},
		[][]interface{}{{3, "Ice"}})
	require.Nil(t, err)
	c, err := Concat(a, b)
	require.Nil(t, err)
	rows, err := Rows(c)
	require.Nil(t, err)
	require.Equal(t, [][]interface{}{{int64(1), "Apple"}, {int64(2), nil}, {int64(3), "Ice"}}, rows)

	empty, err := Concat()
	require.Nil(t, err)
	require.Equal(t, 0, empty.NumRows())

	d, err := FromRows([]string{"id", "name"}, []patina.ColumnType{&patina.Float64ColumnType{}, &patina.VarStringColumnType{}},
		[][]interface{}{{3, "Ice"}})
	require.Nil(t, err)
	_, err = Concat(a, d)
	require.NotNil(t, err)
}
