package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/table"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int                          // The number of lines to ignore from the beginning of the data, before any header. Defaults to 0.
	ColumnNames []string                     // The names of all columns, in order. If empty, names are read from the first line after HeaderLines.
	ColumnTypes map[string]patina.ColumnType // The storage type of each column. Columns without a type are stored as VarStrings.
	Delimiter   rune                         // The delimiter separating columns in the file. Defaults to ,
	Comment     rune                         // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string                       // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
}

// Parser produces Tables from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if conf.ColumnTypes == nil {
		conf.ColumnTypes = make(map[string]patina.ColumnType)
	}
	return &Parser{conf: conf}
}

// ColumnTypesFor returns the default storage type of every Field in s, for use as ParserConf.ColumnTypes
func ColumnTypesFor(s patina.Schema) map[string]patina.ColumnType {
	types := make(map[string]patina.ColumnType, s.NumFields())
	s.ForEachField(func(idx int, f patina.Field) error {
		types[f.Name] = f.Type.StorageType()
		return nil
	})
	return types
}

// Parse parses DSV data to produce a Table
func (p *Parser) Parse(r io.Reader) (patina.Table, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err != nil {
			return nil, err
		}
	}
	names := p.conf.ColumnNames
	if len(names) == 0 {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("DSV data contains no header line")
		} else if err != nil {
			return nil, err
		}
		names = append([]string{}, header...)
	}
	reader.FieldsPerRecord = len(names)
	colTypes := make([]patina.ColumnType, len(names))
	for i, name := range names {
		colType, ok := p.conf.ColumnTypes[name]
		if !ok {
			colType = &patina.VarStringColumnType{}
		}
		colTypes[i] = colType
	}

	values := make([][]interface{}, len(names))
	for rowNum := 0; ; rowNum++ {
		rowStrings, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err = scanRow(p.conf, names, colTypes, rowStrings, values); err != nil {
			return nil, fmt.Errorf("Row %d: %w", rowNum, err)
		}
	}
	cols := make([]patina.Column, len(names))
	for i, name := range names {
		col, err := table.CreateColumn(name, colTypes[i], values[i])
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return table.CreateTable(cols...)
}
