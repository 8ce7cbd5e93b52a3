package report

import (
	"fmt"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func position(order ...string) func(string) int {
	return func(column string) int {
		for i, c := range order {
			if c == column {
				return i
			}
		}
		return -1
	}
}

func TestSort(t *testing.T) {
	failures := []Failure{
		{Column: "extra_b", Kind: UnexpectedColumn},
		{Column: "zone", Kind: EnumViolation, Count: 1},
		{Column: "id", Kind: UniqueViolation, Count: 2},
		{Column: "extra_a", Kind: UnexpectedColumn},
		{Column: "id", Kind: NullViolation, Count: 1},
		{Column: "zone", Kind: MissingColumn},
	}
	Sort(failures, position("id", "name", "zone"))
	var order []string
	for _, f := range failures {
		order = append(order, fmt.Sprintf("%s/%s", f.Column, f.Kind))
	}
	require.Equal(t, []string{
		"id/null_violation",
		"id/unique_violation",
		"zone/missing_column",
		"zone/enum_violation",
		"extra_a/unexpected_column",
		"extra_b/unexpected_column",
	}, order)
}

func TestEmptyReport(t *testing.T) {
	rep := New("Product", nil)
	require.True(t, rep.OK())
	require.Nil(t, rep.Err())
	require.Equal(t, "0 validation errors for Product", rep.Error())
}

func TestReportError(t *testing.T) {
	rep := New("Product", []Failure{
		{Column: "id", Kind: UniqueViolation, Count: 2, Sample: []interface{}{int64(64)}},
		{Column: "id", Kind: BoundsViolation, Count: 1, Sample: []interface{}{int64(-1)}},
		{Column: "zone", Kind: EnumViolation, Count: 1, Sample: []interface{}{"oven"}},
	})
	require.False(t, rep.OK())
	require.Equal(t, 3, rep.Len())
	require.Equal(t, "3 validation errors for Product\n"+
		"id\n"+
		"  2 rows with duplicated values (sample: [64]) (type=unique_violation)\n"+
		"  1 row with out of bound values (sample: [-1]) (type=bounds_violation)\n"+
		"zone\n"+
		"  1 row with values outside the permitted set (sample: [\"oven\"]) (type=enum_violation)",
		rep.Error())
	require.Len(t, rep.OfKind(UniqueViolation), 1)
	require.Len(t, rep.ForColumn("id"), 2)
}

func TestAsReport(t *testing.T) {
	rep := New("", []Failure{{Column: "id", Kind: MissingColumn}})
	wrapped := fmt.Errorf("loading products: %w", rep.Err())
	found, ok := AsReport(wrapped)
	require.True(t, ok)
	require.Equal(t, rep, found)
	_, ok = AsReport(fmt.Errorf("other"))
	require.False(t, ok)
	_, ok = AsReport(nil)
	require.False(t, ok)
}

func TestReportJSON(t *testing.T) {
	rep := New("Product", []Failure{
		{Column: "zone", Kind: EnumViolation, Count: 1, Sample: []interface{}{"oven"}, Rows: []int{0}},
	})
	data, err := rep.JSON()
	require.Nil(t, err)
	require.JSONEq(t, `{
		"model": "Product",
		"failures": [{
			"column": "zone",
			"kind": "enum_violation",
			"offending_row_count": 1,
			"sample_offending_values": ["oven"],
			"sample_rows": [0]
		}]
	}`, string(data))

	var decoded Report
	require.Nil(t, gojson.Unmarshal(data, &decoded))
	require.Equal(t, EnumViolation, decoded.Failures[0].Kind)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "missing_column", MissingColumn.String())
	require.Equal(t, "custom_check_violation", CustomCheckViolation.String())
	require.Equal(t, "kind(42)", Kind(42).String())
}
