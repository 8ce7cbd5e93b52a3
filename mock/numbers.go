package mock

import (
	"math"
	"time"

	"github.com/go-sif/patina"
)

const (
	secondsPerDay = 86400
	// 2000-01-01T00:00:00Z
	originSeconds = 946684800
	originDays    = originSeconds / secondsPerDay
)

// sequence describes evenly spaced integers. A negative count means unbounded.
type sequence struct {
	start int64
	step  int64
	count int64
}

// at returns the i-th element of this sequence, wrapping around bounded sequences
func (s sequence) at(i int) int64 {
	n := int64(i)
	if s.count > 0 {
		n = n % s.count
	}
	return s.start + n*s.step
}

// capacity returns the number of distinct elements in this sequence, or -1 if unbounded
func (s sequence) capacity() int64 {
	return s.count
}

func ceilMultiple(x int64, step int64) int64 {
	q := x / step
	if q*step < x {
		q++
	}
	return q * step
}

func floorMultiple(x int64, step int64) int64 {
	q := x / step
	if q*step > x {
		q--
	}
	return q * step
}

// integerSequence produces multiples of step within [lo, hi], counting up from lo,
// down from hi, or up from origin when neither bound is set
func integerSequence(lo *int64, hi *int64, step int64, origin int64) (sequence, string) {
	if lo != nil && hi != nil && *lo > *hi {
		return sequence{}, "minimum exceeds maximum"
	}
	switch {
	case lo != nil:
		seq := sequence{start: ceilMultiple(*lo, step), step: step, count: -1}
		if hi != nil {
			if seq.start > *hi {
				return sequence{}, "no multiple of the step lies within the bounds"
			}
			seq.count = spanCount(seq.start, *hi, step)
		}
		return seq, ""
	case hi != nil:
		return sequence{start: floorMultiple(*hi, step), step: -step, count: -1}, ""
	}
	return sequence{start: ceilMultiple(origin, step), step: step, count: -1}, ""
}

// spanCount returns the number of multiples of step in [start, hi], saturating at MaxInt64
func spanCount(start int64, hi int64, step int64) int64 {
	q := (uint64(hi) - uint64(start)) / uint64(step)
	if q >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q) + 1
}

// integerStep resolves the smallest positive integer which is a multiple of m
func integerStep(m float64) (int64, bool) {
	if m <= 0 {
		return 1, true
	}
	if m == math.Trunc(m) && m <= math.MaxInt64 {
		return int64(m), true
	}
	for k := int64(1); k <= 1000; k++ {
		if r := math.Abs(math.Remainder(float64(k), m)); r <= 1e-9*float64(k) {
			return k, true
		}
	}
	return 0, false
}

// integerBounds converts Bounds into inclusive int64 limits, using conv to map each bound.
// conv reports whether a bound falls exactly on an integer, so that exclusivity can be applied.
func integerBounds(b *patina.Bounds, conv func(v interface{}, ceil bool) (int64, bool)) (*int64, *int64) {
	if b == nil {
		return nil, nil
	}
	var lo, hi *int64
	if b.Min != nil {
		v, exact := conv(b.Min, true)
		if exact && b.ExclusiveMin {
			v++
		}
		lo = &v
	}
	if b.Max != nil {
		v, exact := conv(b.Max, false)
		if exact && b.ExclusiveMax {
			v--
		}
		hi = &v
	}
	return lo, hi
}

func convInteger(v interface{}, ceil bool) (int64, bool) {
	return v.(int64), true
}

func convDays(v interface{}, ceil bool) (int64, bool) {
	t := v.(time.Time)
	d := t.Unix() / secondsPerDay
	if t.Unix()%secondsPerDay < 0 {
		d--
	}
	return d, true
}

func convSeconds(v interface{}, ceil bool) (int64, bool) {
	t := v.(time.Time)
	s := t.Unix()
	if t.Nanosecond() == 0 {
		return s, true
	}
	if ceil {
		s++
	}
	return s, false
}

// multiplesOf converts float bounds into inclusive limits on k, for values k*step
func multiplesOf(b *patina.Bounds, step float64) (*int64, *int64) {
	return integerBounds(b, func(v interface{}, ceil bool) (int64, bool) {
		x := v.(float64) / step
		var k float64
		if ceil {
			k = math.Ceil(x)
		} else {
			k = math.Floor(x)
		}
		return int64(k), k == x
	})
}

func generateIntegers(f patina.Field, rowCount int) ([]interface{}, string) {
	step, ok := integerStep(f.MultipleOf)
	if !ok {
		return nil, "no integer is a multiple of the step"
	}
	lo, hi := integerBounds(f.Bounds, convInteger)
	seq, reason := integerSequence(lo, hi, step, 0)
	if reason != "" {
		return nil, reason
	}
	return fromSequence(f, seq, rowCount, func(n int64) interface{} { return n })
}

func generateDates(f patina.Field, rowCount int) ([]interface{}, string) {
	lo, hi := integerBounds(f.Bounds, convDays)
	seq, reason := integerSequence(lo, hi, 1, originDays)
	if reason != "" {
		return nil, reason
	}
	return fromSequence(f, seq, rowCount, func(n int64) interface{} {
		return time.Unix(n*secondsPerDay, 0).UTC()
	})
}

func generateDatetimes(f patina.Field, rowCount int) ([]interface{}, string) {
	lo, hi := integerBounds(f.Bounds, convSeconds)
	seq, reason := integerSequence(lo, hi, 1, originSeconds)
	if reason != "" {
		return nil, reason
	}
	return fromSequence(f, seq, rowCount, func(n int64) interface{} {
		return time.Unix(n, 0).UTC()
	})
}

func generateFloats(f patina.Field, rowCount int) ([]interface{}, string) {
	if f.MultipleOf > 0 {
		lo, hi := multiplesOf(f.Bounds, f.MultipleOf)
		seq, reason := integerSequence(lo, hi, 1, 0)
		if reason != "" {
			return nil, reason
		}
		return fromSequence(f, seq, rowCount, func(n int64) interface{} { return float64(n) * f.MultipleOf })
	}
	values := make([]interface{}, rowCount)
	var lo, hi *float64
	if f.Bounds != nil {
		if f.Bounds.Min != nil {
			v := f.Bounds.Min.(float64)
			lo = &v
		}
		if f.Bounds.Max != nil {
			v := f.Bounds.Max.(float64)
			hi = &v
		}
	}
	switch {
	case lo != nil && hi != nil:
		if *lo > *hi {
			return nil, "minimum exceeds maximum"
		}
		if *lo == *hi {
			if f.Bounds.ExclusiveMin || f.Bounds.ExclusiveMax {
				return nil, "exclusive bounds admit no values"
			}
			if f.Unique && rowCount > 1 {
				return nil, "bounds admit a single value"
			}
			for i := range values {
				values[i] = *lo
			}
			return values, ""
		}
		// spread strictly inside the bounds
		width := *hi - *lo
		for i := range values {
			values[i] = *lo + width*float64(i+1)/float64(rowCount+1)
		}
	case lo != nil:
		v := *lo
		for i := range values {
			v = stepFloat(v, math.Inf(1))
			values[i] = v
		}
	case hi != nil:
		v := *hi
		for i := range values {
			v = stepFloat(v, math.Inf(-1))
			values[i] = v
		}
	default:
		for i := range values {
			values[i] = float64(i)
		}
	}
	return values, ""
}

// stepFloat moves v towards dir by one, or by a single ulp where one is too small to change v
func stepFloat(v float64, dir float64) float64 {
	next := math.Nextafter(v, dir)
	if math.Abs(next-v) >= 1 {
		return next
	}
	return v + math.Copysign(1, dir)
}

// fromSequence takes rowCount values from seq, failing if a unique field needs more than seq holds
func fromSequence(f patina.Field, seq sequence, rowCount int, conv func(int64) interface{}) ([]interface{}, string) {
	if c := seq.capacity(); c >= 0 && f.Unique && int64(rowCount) > c {
		return nil, "bounds admit fewer distinct values than requested rows"
	}
	values := make([]interface{}, rowCount)
	for i := range values {
		values[i] = conv(seq.at(i))
	}
	return values, ""
}
