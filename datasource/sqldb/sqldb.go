package sqldb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/table"
	"github.com/hashicorp/go-multierror"
)

// Conf configures the conversion of result sets into Tables
type Conf struct {
	ColumnTypes map[string]patina.ColumnType // The storage type of each column. Other columns are typed from their declared database type, then from their values.
}

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx used to run queries
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Executor runs SQL against a database and returns the result as a Table
type Executor struct {
	db   Querier
	conf *Conf
}

// CreateExecutor is a factory for Executors
func CreateExecutor(db Querier, conf *Conf) *Executor {
	if conf == nil {
		conf = &Conf{}
	}
	return &Executor{db: db, conf: conf}
}

// Execute runs a query and returns its result as a Table
func (e *Executor) Execute(ctx context.Context, query string, args ...interface{}) (patina.Table, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return FromRows(rows, e.conf)
}

// FromRows reads every remaining row of a result set into a Table. It does not close rows.
func FromRows(rows *sql.Rows, conf *Conf) (patina.Table, error) {
	if conf == nil {
		conf = &Conf{}
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(colTypes))
	values := make([][]interface{}, len(colTypes))
	for i, ct := range colTypes {
		names[i] = ct.Name()
	}
	scratch := make([]interface{}, len(colTypes))
	ptrs := make([]interface{}, len(colTypes))
	for i := range scratch {
		ptrs[i] = &scratch[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range scratch {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			values[i] = append(values[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var multierr *multierror.Error
	cols := make([]patina.Column, 0, len(names))
	for i, name := range names {
		colType, ok := conf.ColumnTypes[name]
		if !ok {
			colType = columnTypeOf(colTypes[i], values[i])
		}
		col, err := table.ConvertColumn(name, colType, normalizeValues(colType, values[i]))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		cols = append(cols, col)
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return table.CreateTable(cols...)
}

// columnTypeOf maps a declared database type onto a storage type, falling back
// to the Go type of the first non-null value
func columnTypeOf(ct *sql.ColumnType, values []interface{}) patina.ColumnType {
	decl := strings.ToUpper(ct.DatabaseTypeName())
	switch {
	case strings.Contains(decl, "INT"):
		return &patina.Int64ColumnType{}
	case strings.Contains(decl, "REAL"), strings.Contains(decl, "FLOA"), strings.Contains(decl, "DOUB"),
		strings.Contains(decl, "NUMERIC"), strings.Contains(decl, "DECIMAL"):
		return &patina.Float64ColumnType{}
	case strings.HasPrefix(decl, "BOOL"):
		return &patina.BoolColumnType{}
	case decl == "DATE":
		return &patina.DateColumnType{}
	case strings.HasPrefix(decl, "DATETIME"), strings.HasPrefix(decl, "TIMESTAMP"):
		return &patina.TimeColumnType{}
	case decl != "":
		return &patina.VarStringColumnType{}
	}
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case int64:
			return &patina.Int64ColumnType{}
		case float64:
			return &patina.Float64ColumnType{}
		case bool:
			return &patina.BoolColumnType{}
		case time.Time:
			return &patina.TimeColumnType{}
		}
		return &patina.VarStringColumnType{}
	}
	return &patina.VarStringColumnType{}
}

// normalizeValues adapts driver representations which ConvertValue does not accept
func normalizeValues(colType patina.ColumnType, values []interface{}) []interface{} {
	res := make([]interface{}, len(values))
	for i, v := range values {
		switch cv := v.(type) {
		case int64:
			if _, ok := colType.(*patina.BoolColumnType); ok && (cv == 0 || cv == 1) {
				v = cv == 1
			}
		case time.Time:
			if _, ok := colType.(*patina.DateColumnType); ok {
				v = patina.TruncateToDate(cv)
			}
		}
		res[i] = v
	}
	return res
}
