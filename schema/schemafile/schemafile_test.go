package schemafile

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/schema"
	"github.com/stretchr/testify/require"
)

func priceExceedsCost(cols []patina.Column) (patina.Mask, error) {
	mask := make(patina.Mask, cols[0].Len())
	for i := range mask {
		mask[i] = cols[0].IsNil(i) || cols[1].IsNil(i) || cols[0].Get(i).(float64) > cols[1].Get(i).(float64)
	}
	return mask, nil
}

var registry = map[string]patina.Predicate{"price_exceeds_cost": priceExceedsCost}

func createInventorySchema(t *testing.T) patina.Schema {
	minLen, maxLen := 3, 6
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true, Bounds: &patina.Bounds{Min: 100}, MultipleOf: 5, Description: "internal identifier"},
		patina.Field{Name: "name", Type: &patina.StringType{}, MinLength: &minLen, MaxLength: &maxLen, Pattern: "[a-z]+"},
		patina.Field{Name: "zone", Type: &patina.EnumType{Values: []string{"dry", "cold", "frozen"}}, Default: "dry"},
		patina.Field{Name: "price", Type: &patina.FloatType{}, MultipleOf: 0.25, Bounds: &patina.Bounds{Min: 0, Max: 99.5, ExclusiveMin: true},
			Checks: []patina.Check{{Name: "price_exceeds_cost", Columns: []string{"price", "cost"}, Predicate: priceExceedsCost}}},
		patina.Field{Name: "cost", Type: &patina.FloatType{}},
		patina.Field{Name: "organic", Type: &patina.BooleanType{}, Default: false},
		patina.Field{Name: "received", Type: &patina.DateType{}, Nullable: true, Bounds: &patina.Bounds{Min: "2021-01-01"}},
		patina.Field{Name: "updated", Type: &patina.DatetimeType{}, Bounds: &patina.Bounds{Max: time.Date(2021, 6, 1, 0, 0, 0, 500, time.UTC)}},
		patina.Field{Name: "size", Type: &patina.IntegerType{}, In: []interface{}{1, 2, 3}},
	)
	require.Nil(t, err)
	return s.Named("Inventory")
}

func TestWriteAndLoad(t *testing.T) {
	s := createInventorySchema(t)
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.Nil(t, Write(path, s))
	loaded, err := Load(path, registry)
	require.Nil(t, err)
	require.Equal(t, "Inventory", loaded.Name())
	require.Nil(t, s.Equals(loaded))
	f, err := loaded.Field("id")
	require.Nil(t, err)
	require.Equal(t, "internal identifier", f.Description)
}

func TestEncode(t *testing.T) {
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true, Bounds: &patina.Bounds{Min: 1}},
		patina.Field{Name: "zone", Type: &patina.EnumType{Values: []string{"dry", "cold"}}},
	)
	require.Nil(t, err)
	var buf strings.Builder
	require.Nil(t, Encode(&buf, s.Named("Product")))
	require.Equal(t, `name: Product
fields:
  - name: id
    type: integer
    unique: true
    min: 1
  - name: zone
    type: enum
    values:
      - dry
      - cold
`, buf.String())
}

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(`
name: Product
fields:
  - name: id
    type: int
    min: 1
  - name: received
    type: date
    nullable: true
    max: 2021-12-31
  - name: zone
    type: enum
    values: [dry, cold]
    in: [dry]
`), nil)
	require.Nil(t, err)
	require.Equal(t, []string{"id", "received", "zone"}, s.FieldNames())
	f, err := s.Field("received")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), f.Bounds.Max)
	require.True(t, f.Nullable)
	f, err = s.Field("id")
	require.Nil(t, err)
	require.Equal(t, int64(1), f.Bounds.Min)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("fields:\n  - name: id\n    type: integer\n    minimum: 1\n"), nil)
	require.NotNil(t, err)

	_, err = Decode(strings.NewReader("fields:\n  - name: id\n    type: decimal\n"), nil)
	var invalid errors.InvalidConstraintError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "id", invalid.Name)

	_, err = Decode(strings.NewReader("fields:\n  - name: price\n    type: float\n    checks:\n      - name: positive\n"), registry)
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, invalid.Reason, "positive")

	_, err = Decode(strings.NewReader("fields:\n  - name: id\n    type: integer\n  - name: id\n    type: integer\n"), nil)
	var duplicate errors.DuplicateFieldError
	require.ErrorAs(t, err, &duplicate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NotNil(t, err)
}
