package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/patina"
)

// Parses a slice of strings into column buffers, according to the column types
func scanRow(conf *ParserConf, names []string, colTypes []patina.ColumnType, rowStrings []string, values [][]interface{}) error {
	for i := 0; i < len(rowStrings); i++ {
		val, err := scanValue(conf, names[i], colTypes[i], rowStrings[i])
		if err != nil {
			return fmt.Errorf("Column %s: %w", names[i], err)
		}
		values[i] = append(values[i], val)
	}
	return nil
}

// Parses a single string into the Go representation of a column type
func scanValue(conf *ParserConf, name string, colType patina.ColumnType, colVal string) (interface{}, error) {
	// check for a nil value
	if len(colVal) == 0 || colVal == conf.NilValue {
		return nil, nil
	}
	// otherwise, parse type
	switch ct := colType.(type) {
	case *patina.BoolColumnType:
		return strconv.ParseBool(colVal)
	case *patina.Uint8ColumnType:
		ival, err := strconv.ParseUint(colVal, 10, 8)
		return uint8(ival), err
	case *patina.Uint16ColumnType:
		ival, err := strconv.ParseUint(colVal, 10, 16)
		return uint16(ival), err
	case *patina.Uint32ColumnType:
		ival, err := strconv.ParseUint(colVal, 10, 32)
		return uint32(ival), err
	case *patina.Uint64ColumnType:
		return strconv.ParseUint(colVal, 10, 64)
	case *patina.Int8ColumnType:
		ival, err := strconv.ParseInt(colVal, 10, 8)
		return int8(ival), err
	case *patina.Int16ColumnType:
		ival, err := strconv.ParseInt(colVal, 10, 16)
		return int16(ival), err
	case *patina.Int32ColumnType:
		ival, err := strconv.ParseInt(colVal, 10, 32)
		return int32(ival), err
	case *patina.Int64ColumnType:
		return strconv.ParseInt(colVal, 10, 64)
	case *patina.Float32ColumnType:
		fval, err := strconv.ParseFloat(colVal, 32)
		return float32(fval), err
	case *patina.Float64ColumnType:
		return strconv.ParseFloat(colVal, 64)
	case *patina.StringColumnType:
		if len(colVal) > ct.Length {
			return nil, fmt.Errorf("StringColumn %s contains more than %d bytes", name, ct.Length)
		}
		return colVal, nil
	case *patina.TimeColumnType:
		tval, err := time.Parse(ct.Layout(), colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", name, ct.Layout(), colVal)
		}
		return tval, nil
	case *patina.DateColumnType:
		tval, err := time.Parse(patina.DateLayout, colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as date. Was: %#v", name, colVal)
		}
		return tval, nil
	case *patina.VarStringColumnType, *patina.CategoricalColumnType:
		return colVal, nil
	default:
		return nil, fmt.Errorf("DSV parsing does not support column type %T", colType)
	}
}
