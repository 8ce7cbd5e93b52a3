package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
)

// Kind classifies a Failure
type Kind int

// Failure kinds, in the order they are reported for a single column
const (
	MissingColumn Kind = iota
	UnexpectedColumn
	WrongType
	NullViolation
	UniqueViolation
	BoundsViolation
	PatternViolation
	EnumViolation
	CustomCheckViolation
)

var kindNames = []string{
	"missing_column",
	"unexpected_column",
	"wrong_type",
	"null_violation",
	"unique_violation",
	"bounds_violation",
	"pattern_violation",
	"enum_violation",
	"custom_check_violation",
}

// String returns the snake_case name of this Kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes this Kind by name
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("Unknown failure kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a Kind from its name
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("Unknown failure kind %s", string(text))
}

// Failure is a single problem found while validating a Table or record
type Failure struct {
	Column  string        `json:"column"`
	Kind    Kind          `json:"kind"`
	Count   int           `json:"offending_row_count"`
	Sample  []interface{} `json:"sample_offending_values,omitempty"` // distinct offending values, capped
	Rows    []int         `json:"sample_rows,omitempty"`             // offending row positions, capped
	Message string        `json:"message,omitempty"`
}

// Describe produces a single-line, human-readable description of this Failure
func (f Failure) Describe() string {
	var desc string
	switch f.Kind {
	case MissingColumn:
		desc = "Missing column"
	case UnexpectedColumn:
		desc = "Unexpected column"
	case WrongType:
		desc = "Column has the wrong type"
	case NullViolation:
		desc = fmt.Sprintf("%d missing %s", f.Count, plural(f.Count, "value", "values"))
	case UniqueViolation:
		desc = fmt.Sprintf("%d %s with duplicated values", f.Count, plural(f.Count, "row", "rows"))
	case BoundsViolation:
		desc = fmt.Sprintf("%d %s with out of bound values", f.Count, plural(f.Count, "row", "rows"))
	case PatternViolation:
		desc = fmt.Sprintf("%d %s not matching the pattern", f.Count, plural(f.Count, "row", "rows"))
	case EnumViolation:
		desc = fmt.Sprintf("%d %s with values outside the permitted set", f.Count, plural(f.Count, "row", "rows"))
	case CustomCheckViolation:
		desc = fmt.Sprintf("%d %s not matching custom constraints", f.Count, plural(f.Count, "row", "rows"))
	default:
		desc = f.Kind.String()
	}
	if f.Message != "" {
		desc += ": " + f.Message
	}
	if len(f.Sample) > 0 {
		desc += " (sample: " + formatSample(f.Sample) + ")"
	}
	return desc
}

func plural(n int, one string, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func formatSample(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", val)
		case time.Time:
			parts[i] = val.Format(time.RFC3339)
		default:
			parts[i] = fmt.Sprintf("%v", val)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Report is the ordered collection of every Failure found in one validation call.
// An empty Report denotes success. A non-empty Report is used as an error.
type Report struct {
	Model    string    `json:"model,omitempty"`
	Failures []Failure `json:"failures"`
}

// New builds a Report for the named model, retaining the order of failures
func New(model string, failures []Failure) *Report {
	if failures == nil {
		failures = []Failure{}
	}
	return &Report{Model: model, Failures: failures}
}

// OK returns true iff this Report contains no Failures
func (r *Report) OK() bool {
	return r == nil || len(r.Failures) == 0
}

// Len returns the number of Failures in this Report
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Failures)
}

// OfKind returns the Failures of the given Kind, in report order
func (r *Report) OfKind(kind Kind) []Failure {
	res := []Failure{}
	for _, f := range r.Failures {
		if f.Kind == kind {
			res = append(res, f)
		}
	}
	return res
}

// ForColumn returns the Failures for the given column, in report order
func (r *Report) ForColumn(column string) []Failure {
	res := []Failure{}
	for _, f := range r.Failures {
		if f.Column == column {
			res = append(res, f)
		}
	}
	return res
}

// Err returns this Report as an error, or nil if it is empty
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return r
}

// Error renders every Failure, grouped by column in report order
func (r *Report) Error() string {
	var b strings.Builder
	n := r.Len()
	fmt.Fprintf(&b, "%d validation %s", n, plural(n, "error", "errors"))
	if r != nil && r.Model != "" {
		fmt.Fprintf(&b, " for %s", r.Model)
	}
	if n == 0 {
		return b.String()
	}
	var column string
	for i, f := range r.Failures {
		if i == 0 || f.Column != column {
			column = f.Column
			fmt.Fprintf(&b, "\n%s", column)
		}
		fmt.Fprintf(&b, "\n  %s (type=%s)", f.Describe(), f.Kind)
	}
	return b.String()
}

// JSON encodes this Report
func (r *Report) JSON() ([]byte, error) {
	return gojson.Marshal(r)
}

// AsReport extracts a Report from an error chain using errors.As
func AsReport(err error) (*Report, bool) {
	if err == nil {
		return nil, false
	}
	var rep *Report
	if errors.As(err, &rep) {
		return rep, true
	}
	return nil, false
}

// Sort orders failures deterministically. position maps a column to its declaration
// index, or -1 for undeclared columns. Declared columns come first in declaration
// order, then undeclared columns by name; within a column, failures are ordered by
// Kind. The sort is stable, so failures of the same column and Kind keep their order.
func Sort(failures []Failure, position func(column string) int) {
	sort.SliceStable(failures, func(i, j int) bool {
		a, b := failures[i], failures[j]
		pa, pb := position(a.Column), position(b.Column)
		switch {
		case pa >= 0 && pb < 0:
			return true
		case pa < 0 && pb >= 0:
			return false
		case pa != pb:
			return pa < pb
		case pa < 0 && a.Column != b.Column:
			return a.Column < b.Column
		}
		return a.Kind < b.Kind
	})
}
