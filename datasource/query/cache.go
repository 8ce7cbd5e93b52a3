package query

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/table"
	gojson "github.com/goccy/go-json"
	"github.com/pierrec/lz4"
)

// Metadata describes the execution which produced a Table
type Metadata struct {
	SQL             string         `json:"sql"`
	QueryStartTime  time.Time      `json:"query_start_time"`
	QueryFinishTime time.Time      `json:"query_finish_time"`
	Columns         []CachedColumn `json:"columns,omitempty"`
}

// CachedColumn records the name and storage type of a cached column
type CachedColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// writeCache stores a Table as lz4-compressed JSON lines: one line of Metadata,
// followed by one array of values per row. The file is replaced atomically.
func writeCache(path string, t patina.Table, meta *Metadata) error {
	names := t.ColumnNames()
	types := t.ColumnTypes()
	header := *meta
	header.Columns = make([]CachedColumn, len(names))
	for i, name := range names {
		header.Columns[i] = CachedColumn{Name: name, Type: patina.ColumnTypeName(types[i])}
	}
	rows, err := table.Rows(t)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()
	compressor := lz4.NewWriter(tmp)
	w := bufio.NewWriter(compressor)
	writeLine := func(v interface{}) error {
		line, err := gojson.Marshal(v)
		if err != nil {
			return err
		}
		if _, err = w.Write(line); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}
	if err := writeLine(header); err != nil {
		tmp.Close()
		return err
	}
	for i, row := range rows {
		if err := writeLine(row); err != nil {
			tmp.Close()
			return fmt.Errorf("Row %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := compressor.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readCache loads a Table and its Metadata from a file written by writeCache
func readCache(path string) (patina.Table, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warnf("couldn't close file %s: %v", path, err)
		}
	}()
	dec := gojson.NewDecoder(lz4.NewReader(f))
	dec.UseNumber()
	meta := &Metadata{}
	if err := dec.Decode(meta); err != nil {
		return nil, nil, fmt.Errorf("Invalid cache header: %w", err)
	}
	types := make([]patina.ColumnType, len(meta.Columns))
	names := make([]string, len(meta.Columns))
	for i, c := range meta.Columns {
		colType, err := patina.ParseColumnType(c.Type)
		if err != nil {
			return nil, nil, err
		}
		names[i] = c.Name
		types[i] = colType
	}
	var rows [][]interface{}
	for {
		var row []interface{}
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("Row %d: %w", len(rows), err)
		}
		if len(row) != len(names) {
			return nil, nil, fmt.Errorf("Row %d has %d values, expected %d", len(rows), len(row), len(names))
		}
		rows = append(rows, row)
	}
	t, err := table.FromRows(names, types, rows)
	if err != nil {
		return nil, nil, err
	}
	return t, meta, nil
}
