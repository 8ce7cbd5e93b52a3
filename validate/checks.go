package validate

import (
	"github.com/go-sif/patina"
	"github.com/go-sif/patina/internal/compute"
	"github.com/go-sif/patina/internal/util"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/report"
	"github.com/go-sif/patina/schema"
)

// checkContent evaluates every content constraint of f against its well-typed column.
// columns holds every well-typed column, for use by custom checks.
func checkContent(f patina.Field, col patina.Column, columns map[string]patina.Column, numRows int, o *Options) []report.Failure {
	var failures []report.Failure
	if !f.Nullable {
		nulls := compute.NullMask(col)
		if n := nulls.Count(); n > 0 {
			failures = append(failures, report.Failure{
				Column: f.Name,
				Kind:   report.NullViolation,
				Count:  n,
				Rows:   nulls.Indices(o.SampleSize),
			})
		}
	}
	if f.Unique {
		failures = appendMasked(failures, f.Name, report.UniqueViolation, col, compute.Duplicated(col), "", o)
	}
	bounds, message := boundsMask(f, col)
	failures = appendMasked(failures, f.Name, report.BoundsViolation, col, bounds, message, o)
	if f.Pattern != "" {
		re, err := schema.CompilePattern(f.Pattern)
		if err != nil {
			failures = append(failures, report.Failure{Column: f.Name, Kind: report.PatternViolation, Count: numRows, Message: err.Error()})
		} else {
			failures = appendMasked(failures, f.Name, report.PatternViolation, col, compute.NotMatching(col, re), "", o)
		}
	}
	if sets := compute.PermittedSets(f); len(sets) > 0 {
		failures = appendMasked(failures, f.Name, report.EnumViolation, col, compute.NotIn(col, sets...), "", o)
	}
	for _, chk := range f.Checks {
		if failure := checkCustom(f, chk, col, columns, numRows, o); failure != nil {
			failures = append(failures, *failure)
		}
	}
	return failures
}

// appendMasked appends a Failure of the given kind if mask has any set rows
func appendMasked(failures []report.Failure, column string, kind report.Kind, col patina.Column, mask patina.Mask, message string, o *Options) []report.Failure {
	n := mask.Count()
	if n == 0 {
		return failures
	}
	sample, rows := compute.Sample(col, mask, o.SampleSize)
	return append(failures, report.Failure{
		Column:  column,
		Kind:    kind,
		Count:   n,
		Sample:  sample,
		Rows:    rows,
		Message: message,
	})
}

// boundsMask combines range, multiple-of and length constraints, which are all reported as bounds violations
func boundsMask(f patina.Field, col patina.Column) (patina.Mask, string) {
	mask := make(patina.Mask, col.Len())
	var message string
	if f.Bounds != nil {
		out, err := compute.OutOfBounds(col, f.Bounds)
		if err != nil {
			message = err.Error()
		}
		mask = mask.Or(out)
	}
	if f.MultipleOf > 0 {
		mask = mask.Or(compute.NotMultipleOf(col, f.MultipleOf))
	}
	if f.MinLength != nil || f.MaxLength != nil {
		mask = mask.Or(compute.LengthOutOfBounds(col, f.MinLength, f.MaxLength))
	}
	return mask, message
}

// checkCustom evaluates one custom Check. Checks referencing missing or mistyped columns are skipped,
// since the structural failure has already been reported.
func checkCustom(f patina.Field, chk patina.Check, col patina.Column, columns map[string]patina.Column, numRows int, o *Options) *report.Failure {
	names := f.CheckColumns(chk)
	cols := make([]patina.Column, len(names))
	for i, name := range names {
		c, ok := columns[name]
		if !ok {
			logging.Debugf("Skipping check %q of field %s: column %s is missing or mistyped", chk.Name, f.Name, name)
			return nil
		}
		cols[i] = c
	}
	name := chk.Name
	if name == "" {
		name = f.Name
	}
	mask, err := util.SafePredicate(name, numRows, chk.Predicate)(cols)
	if err != nil {
		return &report.Failure{
			Column:  f.Name,
			Kind:    report.CustomCheckViolation,
			Count:   numRows,
			Message: name + ": " + err.Error(),
		}
	}
	violating := mask.Not()
	n := violating.Count()
	if n == 0 {
		return nil
	}
	sample, rows := compute.Sample(col, violating, o.SampleSize)
	return &report.Failure{
		Column:  f.Name,
		Kind:    report.CustomCheckViolation,
		Count:   n,
		Sample:  sample,
		Rows:    rows,
		Message: chk.Name,
	}
}
