package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/errors"
	"github.com/go-sif/patina/table"
	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int                          // The number of lines to ignore from the beginning of the data. Defaults to 0.
	Comment       rune                         // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int                          // Maximum size in bytes of the buffer used to read lines
	ColumnNames   []string                     // gjson paths of the columns to extract. If empty, the top-level keys of every line are used, in order of first appearance.
	ColumnTypes   map[string]patina.ColumnType // The storage type of each column. Types of other columns are inferred from their values.
}

// Parser produces Tables from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	if conf.ColumnTypes == nil {
		conf.ColumnTypes = make(map[string]patina.ColumnType)
	}
	return &Parser{conf: conf}
}

// Parse parses JSONL data to produce a Table. Every malformed line or value is reported, rather than just the first.
func (p *Parser) Parse(r io.Reader) (patina.Table, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	var multierr *multierror.Error
	var lines []gjson.Result
	for lineNum := p.conf.HeaderLines; scanner.Scan(); lineNum++ {
		rowString := scanner.Text()
		trimmed := strings.TrimSpace(rowString)
		if len(trimmed) == 0 || (p.conf.Comment != 0 && strings.HasPrefix(trimmed, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(rowString) {
			multierr = multierror.Append(multierr, fmt.Errorf("Line %d is not valid JSON:\n\t%s", lineNum, rowString))
			continue
		}
		lines = append(lines, gjson.Parse(rowString))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr.ErrorOrNil()
	}

	names := p.conf.ColumnNames
	if len(names) == 0 {
		names = discoverColumns(lines)
	}
	cols := make([]patina.Column, len(names))
	for i, name := range names {
		colType, ok := p.conf.ColumnTypes[name]
		if !ok {
			colType = inferColumnType(name, lines)
		}
		values := make([]interface{}, len(lines))
		for row, line := range lines {
			val, err := parseValue(line.Get(name), name, colType)
			if err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("Row %d: %w", row, err))
				continue
			}
			values[row] = val
		}
		col, err := table.CreateColumn(name, colType, values)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		cols[i] = col
	}
	if multierr != nil {
		multierr.ErrorFormat = errors.FormatMultiError
		return nil, multierr.ErrorOrNil()
	}
	return table.CreateTable(cols...)
}
