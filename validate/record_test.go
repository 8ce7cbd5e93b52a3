package validate

import (
	"testing"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/report"
	"github.com/go-sif/patina/schema"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	s := createProductSchema(t)
	rec, err := ValidateRecord(s, map[string]interface{}{"id": int8(1), "name": "Apple", "zone": "dry"})
	require.Nil(t, err)
	id, err := rec.Get("id")
	require.Nil(t, err)
	require.Equal(t, int64(1), id)
	require.False(t, rec.IsNil("name"))
	require.Equal(t, map[string]interface{}{"id": int64(1), "name": "Apple", "zone": "dry"}, rec.Values())
	require.Equal(t, `{id: 1, name: "Apple", zone: "dry"}`, rec.ToString())
	require.Equal(t, s, rec.Schema())

	_, err = rec.Get("price")
	var unknown errors.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
}

func TestValidateRecordReportsEveryFailure(t *testing.T) {
	s := createProductSchema(t)
	_, err := ValidateRecord(s, map[string]interface{}{"id": "one", "zone": "oven", "weight": 2.5})
	require.NotNil(t, err)
	rep, ok := report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, []string{
		"id/wrong_type",
		"name/missing_column",
		"zone/enum_violation",
		"weight/unexpected_column",
	}, kinds(rep))
	require.Equal(t, "value is not a valid integer", rep.Failures[0].Message)

	_, err = ValidateRecord(s, map[string]interface{}{"id": 1, "name": "Apple", "zone": "dry", "weight": 2.5}, Lenient())
	require.Nil(t, err)
}

func TestValidateRecordNulls(t *testing.T) {
	s, err := schema.Define(
		patina.Field{Name: "name", Type: &patina.StringType{}},
		patina.Field{Name: "expires", Type: &patina.DateType{}, Nullable: true},
	)
	require.Nil(t, err)
	rec, err := ValidateRecord(s, map[string]interface{}{"name": "Milk"})
	require.Nil(t, err)
	require.True(t, rec.IsNil("expires"))

	rec, err = ValidateRecord(s, map[string]interface{}{"name": "Milk", "expires": "2021-03-04"})
	require.Nil(t, err)
	expires, err := rec.Get("expires")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), expires)

	_, err = ValidateRecord(s, map[string]interface{}{"name": nil})
	rep, ok := report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, []string{"name/null_violation"}, kinds(rep))
}

func TestValidateRecordConstraints(t *testing.T) {
	maxLen := 3
	s, err := schema.Define(
		patina.Field{Name: "level", Type: &patina.IntegerType{}, Bounds: &patina.Bounds{Min: 0, Max: 10}},
		patina.Field{Name: "code", Type: &patina.StringType{}, Pattern: "[a-z]+", MaxLength: &maxLen},
	)
	require.Nil(t, err)
	_, err = ValidateRecord(s, map[string]interface{}{"level": 10, "code": "abc"})
	require.Nil(t, err)

	_, err = ValidateRecord(s, map[string]interface{}{"level": 11, "code": "ABCD"})
	rep, ok := report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, []string{"level/bounds_violation", "code/bounds_violation", "code/pattern_violation"}, kinds(rep))
	require.Equal(t, []interface{}{int64(11)}, rep.Failures[0].Sample)
}

func TestValidateRecordCustomCheck(t *testing.T) {
	s := createPricingSchema(t, priceExceedsCost())
	_, err := ValidateRecord(s, map[string]interface{}{"price": 5, "cost": 4.5})
	require.Nil(t, err)

	_, err = ValidateRecord(s, map[string]interface{}{"price": 3, "cost": 4})
	rep, ok := report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, []string{"price/custom_check_violation"}, kinds(rep))
	require.Equal(t, []interface{}{3.0}, rep.Failures[0].Sample)

	// the check is skipped when cost is unusable; only the type failure is reported
	_, err = ValidateRecord(s, map[string]interface{}{"price": 3, "cost": "four"})
	rep, ok = report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, []string{"cost/wrong_type"}, kinds(rep))
}
