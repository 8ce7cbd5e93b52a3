package jsonl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/table"
	"github.com/tidwall/gjson"
)

// parseValue converts a located JSON value to the Go representation of colType
func parseValue(val gjson.Result, colName string, colType patina.ColumnType) (interface{}, error) {
	if !val.Exists() || val.Type == gjson.Null {
		return nil, nil
	}
	// parse type
	switch ct := colType.(type) {
	case *patina.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return val.Bool(), nil
	case *patina.Uint8ColumnType, *patina.Uint16ColumnType, *patina.Uint32ColumnType, *patina.Uint64ColumnType,
		*patina.Int8ColumnType, *patina.Int16ColumnType, *patina.Int32ColumnType, *patina.Int64ColumnType,
		*patina.Float32ColumnType, *patina.Float64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		nval, err := table.ConvertValue(colType, json.Number(val.Raw))
		if err != nil {
			return nil, fmt.Errorf("Column %s: %w", colName, err)
		}
		return nval, nil
	case *patina.TimeColumnType:
		tval, err := time.Parse(ct.Layout(), val.String())
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %s", colName, ct.Layout(), val.Raw)
		}
		return tval, nil
	case *patina.DateColumnType:
		tval, err := time.Parse(patina.DateLayout, val.String())
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as date. Was: %s", colName, val.Raw)
		}
		return tval, nil
	case *patina.StringColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		if len(val.Str) > ct.Length {
			return nil, fmt.Errorf("Column %s contains more than %d bytes", colName, ct.Length)
		}
		return val.Str, nil
	case *patina.VarStringColumnType, *patina.CategoricalColumnType:
		if val.Type == gjson.String {
			return val.Str, nil
		}
		// anything else, including nested objects and arrays, is kept as raw JSON
		return val.Raw, nil
	default:
		return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}

// discoverColumns lists the top-level keys of every line, in order of first appearance
func discoverColumns(lines []gjson.Result) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range lines {
		line.ForEach(func(key, value gjson.Result) bool {
			if !seen[key.Str] {
				seen[key.Str] = true
				names = append(names, key.Str)
			}
			return true
		})
	}
	return names
}

// inferColumnType picks a storage type which can hold every value found at path. Integral numbers
// are stored as Int64 unless a fractional number appears, and mixed kinds fall back to VarString.
func inferColumnType(path string, lines []gjson.Result) patina.ColumnType {
	var sawBool, sawNumber, sawFraction, sawOther bool
	for _, line := range lines {
		val := line.Get(path)
		switch val.Type {
		case gjson.Null:
		case gjson.True, gjson.False:
			sawBool = true
		case gjson.Number:
			sawNumber = true
			if _, err := json.Number(val.Raw).Int64(); err != nil {
				sawFraction = true
			}
		default:
			sawOther = true
		}
	}
	switch {
	case sawBool && !sawNumber && !sawOther:
		return &patina.BoolColumnType{}
	case sawNumber && !sawBool && !sawOther && sawFraction:
		return &patina.Float64ColumnType{}
	case sawNumber && !sawBool && !sawOther:
		return &patina.Int64ColumnType{}
	}
	return &patina.VarStringColumnType{}
}
