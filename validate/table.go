package validate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/internal/stats"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/report"
	"golang.org/x/sync/semaphore"
)

// ValidateTable checks t against every constraint declared by s and returns a Report of
// every failure found. An empty Report means t is valid. Failures are ordered by field
// declaration, then by Kind, with undeclared columns last.
func ValidateTable(s patina.Schema, t patina.Table, opts ...Option) *report.Report {
	o := buildOptions(opts)
	fields := s.Fields()
	rs := &stats.RunStatistics{}
	rs.Start(len(fields), t.NumRows())
	slots := make([][]report.Failure, len(fields))
	columns := make(map[string]patina.Column, len(fields))

	// structural check: presence and storage type of every declared field
	for idx, f := range fields {
		col, failure := checkStructure(f, t)
		if failure != nil {
			slots[idx] = append(slots[idx], *failure)
			continue
		}
		columns[f.Name] = col
	}
	var failures []report.Failure
	if o.StrictColumns {
		for _, name := range t.ColumnNames() {
			if !s.HasField(name) {
				failures = append(failures, report.Failure{Column: name, Kind: report.UnexpectedColumn})
			}
		}
	}

	// content check: only well-typed columns
	checkFields(fields, columns, t.NumRows(), o, slots, rs)
	rs.Finish()

	for _, slot := range slots {
		failures = append(failures, slot...)
	}
	report.Sort(failures, s.FieldIndex)
	if logging.Enabled(logging.DebugLevel) {
		logRun(s, rs, len(failures))
	}
	return report.New(s.Name(), failures)
}

// Table checks t against s, returning nil if t is valid and the *report.Report otherwise
func Table(s patina.Schema, t patina.Table, opts ...Option) error {
	return ValidateTable(s, t, opts...).Err()
}

// checkStructure returns the column for f if it is present and well typed, or the structural Failure otherwise
func checkStructure(f patina.Field, t patina.Table) (patina.Column, *report.Failure) {
	if !t.HasColumn(f.Name) {
		return nil, &report.Failure{Column: f.Name, Kind: report.MissingColumn}
	}
	col, err := t.Column(f.Name)
	if err != nil {
		return nil, &report.Failure{Column: f.Name, Kind: report.MissingColumn, Message: err.Error()}
	}
	if !f.Type.Accepts(col.Type()) {
		return nil, &report.Failure{
			Column:  f.Name,
			Kind:    report.WrongType,
			Message: fmt.Sprintf("storage type %s does not match %s field", patina.ColumnTypeName(col.Type()), f.Type.Name()),
		}
	}
	return col, nil
}

// checkFields runs checkContent for every well-typed field, writing each result into the slot
// matching the field's declaration index
func checkFields(fields []patina.Field, columns map[string]patina.Column, numRows int, o *Options, slots [][]report.Failure, rs *stats.RunStatistics) {
	if o.Parallelism == 1 {
		for idx, f := range fields {
			if col, ok := columns[f.Name]; ok {
				start := time.Now()
				slots[idx] = append(slots[idx], checkContent(f, col, columns, numRows, o)...)
				rs.EndField(idx, start)
			}
		}
		return
	}
	ctx := context.Background()
	limit := semaphore.NewWeighted(int64(o.Parallelism))
	var wg sync.WaitGroup
	for idx, f := range fields {
		col, ok := columns[f.Name]
		if !ok {
			continue
		}
		if err := limit.Acquire(ctx, 1); err != nil {
			logging.Warnf("Unable to schedule checks for field %s: %s", f.Name, err)
			break
		}
		wg.Add(1)
		go func(idx int, f patina.Field, col patina.Column) {
			defer wg.Done()
			defer limit.Release(1)
			start := time.Now()
			slots[idx] = append(slots[idx], checkContent(f, col, columns, numRows, o)...)
			rs.EndField(idx, start)
		}(idx, f, col)
	}
	wg.Wait()
}

func logRun(s patina.Schema, rs *stats.RunStatistics, numFailures int) {
	logging.Debugf("Validated %d rows against %s in %s: %d failures", rs.GetNumRowsProcessed(), modelName(s), rs.GetRuntime(), numFailures)
	if idx, d := rs.GetSlowestField(); idx >= 0 {
		logging.Debugf("Slowest field of %s: %s (%s)", modelName(s), s.FieldNames()[idx], d)
	}
}

func modelName(s patina.Schema) string {
	if s.Name() == "" {
		return "schema"
	}
	return s.Name()
}
