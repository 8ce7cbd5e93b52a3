package patina

// Mask is a boolean vector aligned with the rows of a Table
type Mask []bool

// Count returns the number of set positions in this Mask
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Indices returns up to limit set positions, in ascending order. A negative limit returns all of them.
func (m Mask) Indices(limit int) []int {
	res := []int{}
	for i, b := range m {
		if limit >= 0 && len(res) >= limit {
			break
		}
		if b {
			res = append(res, i)
		}
	}
	return res
}

// Not returns a new Mask with every position inverted
func (m Mask) Not() Mask {
	res := make(Mask, len(m))
	for i, b := range m {
		res[i] = !b
	}
	return res
}

// And returns a new Mask set where both m and o are set. Masks must be the same length.
func (m Mask) And(o Mask) Mask {
	res := make(Mask, len(m))
	for i := range m {
		res[i] = m[i] && o[i]
	}
	return res
}

// Or returns a new Mask set where either m or o is set. Masks must be the same length.
func (m Mask) Or(o Mask) Mask {
	res := make(Mask, len(m))
	for i := range m {
		res[i] = m[i] || o[i]
	}
	return res
}
