package mock

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/internal/compute"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	// initial extra repetitions tried beyond the minimum of an unbounded repeat
	repeatSlack = 8
)

// shortlex returns the i-th lowercase word of exactly length runes
func shortlex(i int64, length int) string {
	word := make([]byte, length)
	for j := length - 1; j >= 0; j-- {
		word[j] = alphabet[i%int64(len(alphabet))]
		i /= int64(len(alphabet))
	}
	return string(word)
}

// generateWords enumerates lowercase words in shortlex order within the length bounds of f
func generateWords(f patina.Field, rowCount int) ([]interface{}, string) {
	minLen, maxLen := 1, -1
	if f.MinLength != nil {
		minLen = *f.MinLength
	}
	if f.MaxLength != nil {
		maxLen = *f.MaxLength
		if maxLen < minLen {
			if *f.MaxLength == 0 && f.MinLength == nil {
				minLen = 0
			} else {
				return nil, "minimum length exceeds maximum length"
			}
		}
	}
	values := make([]interface{}, 0, rowCount)
	length := minLen
	var idx int64
	for len(values) < rowCount {
		if length == 0 {
			values = append(values, "")
			length++
			continue
		}
		if maxLen >= 0 && length > maxLen {
			if f.Unique || len(values) == 0 {
				return nil, "length bounds admit fewer distinct values than requested rows"
			}
			// cycle through the words generated so far
			for i := 0; len(values) < rowCount; i++ {
				values = append(values, values[i])
			}
			break
		}
		values = append(values, shortlex(idx, length))
		idx++
		if idx >= wordsOfLength(length) {
			idx = 0
			length++
		}
	}
	return values, ""
}

// wordsOfLength returns the number of words of the given length, saturating at a large value
func wordsOfLength(length int) int64 {
	n := int64(1)
	for i := 0; i < length; i++ {
		n *= int64(len(alphabet))
		if n > 1<<40 {
			return 1 << 40
		}
	}
	return n
}

// counter is a mixed-radix number consumed while walking a regular expression.
// Each choice point takes one digit.
type counter struct {
	rest uint64
}

// choose consumes a digit in base n
func (c *counter) choose(n int) int {
	if n <= 1 {
		return 0
	}
	d := int(c.rest % uint64(n))
	c.rest /= uint64(n)
	return d
}

// walker produces strings matched by a parsed regular expression
type walker struct {
	maxLen    int // upper bound on generated string length, or -1
	slack     int // extra repetitions allowed by unbounded repeats
	unbounded bool
}

// generate walks re, choosing at every choice point according to c. It returns false if re can match nothing.
func (w *walker) generate(re *syntax.Regexp, c *counter, b *strings.Builder) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return false
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			b.WriteRune(r)
		}
		return true
	case syntax.OpCharClass:
		ranges := printable(re.Rune)
		total := 0
		for i := 0; i+1 < len(ranges); i += 2 {
			total += int(ranges[i+1]-ranges[i]) + 1
		}
		if total == 0 {
			return false
		}
		pick := c.choose(total)
		for i := 0; i+1 < len(ranges); i += 2 {
			size := int(ranges[i+1]-ranges[i]) + 1
			if pick < size {
				b.WriteRune(ranges[i] + rune(pick))
				break
			}
			pick -= size
		}
		return true
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		b.WriteByte(alphabet[c.choose(len(alphabet))])
		return true
	case syntax.OpCapture:
		return w.generate(re.Sub[0], c, b)
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !w.generate(sub, c, b) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		return w.generate(re.Sub[c.choose(len(re.Sub))], c, b)
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		min, max := w.repeatRange(re)
		if w.maxLen >= 0 && max > w.maxLen && w.maxLen >= min {
			max = w.maxLen
		}
		n := min + c.choose(max-min+1)
		for i := 0; i < n; i++ {
			if !w.generate(re.Sub[0], c, b) {
				return false
			}
		}
		return true
	}
	return false
}

// repeatRange returns the repetition counts tried for re, noting whether re is unbounded
func (w *walker) repeatRange(re *syntax.Regexp) (int, int) {
	switch re.Op {
	case syntax.OpStar:
		w.unbounded = true
		return 0, w.slack
	case syntax.OpPlus:
		w.unbounded = true
		return 1, 1 + w.slack
	case syntax.OpQuest:
		return 0, 1
	}
	if re.Max < 0 {
		w.unbounded = true
		return re.Min, re.Min + w.slack
	}
	return re.Min, re.Max
}

// printable restricts a rune class to printable ASCII when it has any printable member
func printable(ranges []rune) []rune {
	var res []rune
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo < ' ' {
			lo = ' '
		}
		if hi > '~' {
			hi = '~'
		}
		if lo <= hi {
			res = append(res, lo, hi)
		}
	}
	if len(res) == 0 {
		return ranges
	}
	return res
}

// generatePatterned enumerates distinct strings fully matching the pattern of f and respecting
// its length bounds, by walking the parsed pattern with an increasing counter. Unbounded repeats
// are widened until enough values are found or the length bounds make further widening useless.
func generatePatterned(f patina.Field, rowCount int, re *regexp.Regexp) ([]interface{}, string) {
	parsed, err := syntax.Parse(f.Pattern, syntax.Perl)
	if err != nil {
		return nil, err.Error()
	}
	parsed = parsed.Simplify()
	limit := rowCount + repeatSlack
	if f.MaxLength != nil && *f.MaxLength < limit {
		limit = *f.MaxLength
	}
	var values []interface{}
	for slack := repeatSlack; ; slack *= 2 {
		w := &walker{maxLen: -1, slack: slack}
		if f.MaxLength != nil {
			w.maxLen = *f.MaxLength
		}
		values = enumeratePattern(f, rowCount, re, parsed, w)
		if len(values) >= rowCount || !w.unbounded || slack >= limit {
			break
		}
	}
	if len(values) < rowCount {
		if len(values) == 0 {
			return nil, "pattern cannot match any value within the length bounds"
		}
		if f.Unique {
			return nil, "pattern admits fewer distinct values than requested rows"
		}
		for i := 0; len(values) < rowCount; i++ {
			values = append(values, values[i])
		}
	}
	return values, ""
}

// enumeratePattern collects up to rowCount distinct values reachable by w
func enumeratePattern(f patina.Field, rowCount int, re *regexp.Regexp, parsed *syntax.Regexp, w *walker) []interface{} {
	values := make([]interface{}, 0, rowCount)
	seen := make(map[string]struct{}, rowCount)
	maxAttempts := uint64(64*rowCount + 4096)
	for i := uint64(0); i < maxAttempts && len(values) < rowCount; i++ {
		c := &counter{rest: i}
		var b strings.Builder
		// a leftover digit means a smaller counter already produced this path
		if !w.generate(parsed, c, &b) || c.rest > 0 {
			continue
		}
		s := b.String()
		if _, ok := seen[s]; ok || !re.MatchString(s) || !utf8.ValidString(s) {
			continue
		}
		if (f.MinLength != nil || f.MaxLength != nil) && compute.ViolatesLength(s, f.MinLength, f.MaxLength) {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	return values
}
