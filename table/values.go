package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-sif/patina"
)

// IsValidValue returns true iff v is the Go representation of a value of colType
func IsValidValue(colType patina.ColumnType, v interface{}) bool {
	switch ct := colType.(type) {
	case *patina.BoolColumnType:
		_, ok := v.(bool)
		return ok
	case *patina.Uint8ColumnType:
		_, ok := v.(uint8)
		return ok
	case *patina.Uint16ColumnType:
		_, ok := v.(uint16)
		return ok
	case *patina.Uint32ColumnType:
		_, ok := v.(uint32)
		return ok
	case *patina.Uint64ColumnType:
		_, ok := v.(uint64)
		return ok
	case *patina.Int8ColumnType:
		_, ok := v.(int8)
		return ok
	case *patina.Int16ColumnType:
		_, ok := v.(int16)
		return ok
	case *patina.Int32ColumnType:
		_, ok := v.(int32)
		return ok
	case *patina.Int64ColumnType:
		_, ok := v.(int64)
		return ok
	case *patina.Float32ColumnType:
		_, ok := v.(float32)
		return ok
	case *patina.Float64ColumnType:
		_, ok := v.(float64)
		return ok
	case *patina.TimeColumnType, *patina.DateColumnType:
		_, ok := v.(time.Time)
		return ok
	case *patina.StringColumnType:
		s, ok := v.(string)
		return ok && len(s) <= ct.Length
	case *patina.VarStringColumnType, *patina.CategoricalColumnType:
		_, ok := v.(string)
		return ok
	}
	return false
}

// ConvertValue converts v into the Go representation of colType. Integers and
// floats of any width (and json.Numbers) are converted to the column's width when
// representable, and strings are parsed for numeric, boolean and time columns.
// nil converts to nil.
func ConvertValue(colType patina.ColumnType, v interface{}) (interface{}, error) {
	if v == nil || IsValidValue(colType, v) {
		return v, nil
	}
	switch ct := colType.(type) {
	case *patina.BoolColumnType:
		if s, ok := v.(string); ok {
			return strconv.ParseBool(s)
		}
	case *patina.Uint8ColumnType, *patina.Uint16ColumnType, *patina.Uint32ColumnType, *patina.Uint64ColumnType:
		u, ok := toUint64(v)
		if !ok || u > math.MaxUint64>>(64-uint(ct.Size()*8)) {
			break
		}
		switch ct.(type) {
		case *patina.Uint8ColumnType:
			return uint8(u), nil
		case *patina.Uint16ColumnType:
			return uint16(u), nil
		case *patina.Uint32ColumnType:
			return uint32(u), nil
		default:
			return u, nil
		}
	case *patina.Int8ColumnType, *patina.Int16ColumnType, *patina.Int32ColumnType, *patina.Int64ColumnType:
		i, ok := toInt64(v)
		bits := uint(ct.Size() * 8)
		if !ok || i > math.MaxInt64>>(64-bits) || i < math.MinInt64>>(64-bits) {
			break
		}
		switch ct.(type) {
		case *patina.Int8ColumnType:
			return int8(i), nil
		case *patina.Int16ColumnType:
			return int16(i), nil
		case *patina.Int32ColumnType:
			return int32(i), nil
		default:
			return i, nil
		}
	case *patina.Float32ColumnType:
		if f, ok := toFloat64(v); ok {
			return float32(f), nil
		}
	case *patina.Float64ColumnType:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case *patina.TimeColumnType:
		if s, ok := v.(string); ok {
			if t, err := time.Parse(ct.Layout(), s); err == nil {
				return t, nil
			}
			return time.Parse(time.RFC3339Nano, s)
		}
	case *patina.DateColumnType:
		switch d := v.(type) {
		case string:
			if t, err := time.Parse(patina.DateLayout, d); err == nil {
				return t, nil
			}
			t, err := time.Parse(time.RFC3339Nano, d)
			if err != nil {
				return nil, err
			}
			return patina.TruncateToDate(t), nil
		}
	case *patina.StringColumnType, *patina.VarStringColumnType, *patina.CategoricalColumnType:
		if b, ok := v.([]byte); ok && IsValidValue(colType, string(b)) {
			return string(b), nil
		}
	}
	return nil, fmt.Errorf("Value %#v cannot be converted to column type %s", v, patina.ColumnTypeName(colType))
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	i, ok := (&patina.IntegerType{}).Normalize(v)
	if !ok {
		return 0, false
	}
	return i.(int64), true
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return u, err == nil
	case string:
		u, err := strconv.ParseUint(n, 10, 64)
		return u, err == nil
	}
	i, ok := toInt64(v)
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	f, ok := (&patina.FloatType{}).Normalize(v)
	if !ok {
		return 0, false
	}
	return f.(float64), true
}
