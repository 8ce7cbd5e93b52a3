package compute

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Compare orders two scalar values of compatible kinds, returning -1, 0 or 1.
// Integers of any width and sign compare exactly with each other; a float on
// either side makes the comparison happen in float64.
func Compare(a interface{}, b interface{}) (int, error) {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			break
		}
		if av.Before(bv) {
			return -1, nil
		} else if av.After(bv) {
			return 1, nil
		}
		return 0, nil
	case string:
		bv, ok := b.(string)
		if !ok {
			break
		}
		return strings.Compare(av, bv), nil
	case bool:
		bv, ok := b.(bool)
		if !ok {
			break
		}
		if av == bv {
			return 0, nil
		} else if !av {
			return -1, nil
		}
		return 1, nil
	default:
		an, aok := toNumber(a)
		bn, bok := toNumber(b)
		if !aok || !bok {
			break
		}
		return an.compare(bn), nil
	}
	return 0, fmt.Errorf("Cannot compare %#v with %#v", a, b)
}

// number is an exact representation of any Go numeric value
type number struct {
	isFloat bool
	neg     bool    // for integers, true iff the value is negative
	i       int64   // for negative integers
	u       uint64  // for non-negative integers
	f       float64 // for floats
}

func toNumber(v interface{}) (number, bool) {
	switch n := v.(type) {
	case int:
		return intNumber(int64(n)), true
	case int8:
		return intNumber(int64(n)), true
	case int16:
		return intNumber(int64(n)), true
	case int32:
		return intNumber(int64(n)), true
	case int64:
		return intNumber(n), true
	case uint:
		return number{u: uint64(n)}, true
	case uint8:
		return number{u: uint64(n)}, true
	case uint16:
		return number{u: uint64(n)}, true
	case uint32:
		return number{u: uint64(n)}, true
	case uint64:
		return number{u: n}, true
	case float32:
		return number{isFloat: true, f: float64(n)}, true
	case float64:
		return number{isFloat: true, f: n}, true
	}
	return number{}, false
}

func intNumber(i int64) number {
	if i < 0 {
		return number{neg: true, i: i}
	}
	return number{u: uint64(i)}
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	} else if n.neg {
		return float64(n.i)
	}
	return float64(n.u)
}

func (n number) compare(o number) int {
	if n.isFloat || o.isFloat {
		a, b := n.float(), o.float()
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
	switch {
	case n.neg && !o.neg:
		return -1
	case !n.neg && o.neg:
		return 1
	case n.neg:
		if n.i < o.i {
			return -1
		} else if n.i > o.i {
			return 1
		}
		return 0
	}
	if n.u < o.u {
		return -1
	} else if n.u > o.u {
		return 1
	}
	return 0
}

// IsMultipleOf returns true iff v is an exact multiple of m. Zero is a multiple of everything.
func IsMultipleOf(v interface{}, m float64) bool {
	n, ok := toNumber(v)
	if !ok {
		return false
	}
	if !n.isFloat && m == math.Trunc(m) && m <= math.MaxInt64 {
		step := uint64(m)
		if n.neg {
			return uint64(-n.i)%step == 0
		}
		return n.u%step == 0
	}
	x := n.float()
	if x == 0 {
		return true
	}
	r := math.Abs(math.Remainder(x, m))
	return r <= 1e-9*math.Max(1, math.Abs(x))
}

// Key produces a canonical textual key for a scalar value, such that values which
// Compare as equal (integers across widths, for example) share a key
func Key(v interface{}) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	case time.Time:
		return "t:" + val.UTC().Format(time.RFC3339Nano)
	}
	if n, ok := toNumber(v); ok {
		if n.isFloat {
			return "f:" + strconv.FormatFloat(n.f, 'g', -1, 64)
		} else if n.neg {
			return "i:" + strconv.FormatInt(n.i, 10)
		}
		return "i:" + strconv.FormatUint(n.u, 10)
	}
	return fmt.Sprintf("?:%#v", v)
}
