package util

import (
	"fmt"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/logging"
)

// SafePredicate wraps a Predicate such that panics are recovered and nice error messages are constructed.
// The resulting Mask is checked against numRows.
func SafePredicate(name string, numRows int, pred patina.Predicate) patina.Predicate {
	return func(cols []patina.Column) (mask patina.Mask, err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.Debugf("Check %s panicked:\n%s", name, GetTrace())
				mask = nil
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Check Panic: %w", anErr)
				} else {
					err = fmt.Errorf("Check Panic: %v", r)
				}
			} else if err != nil {
				mask = nil
				err = fmt.Errorf("Check Error: %w", err)
			} else if len(mask) != numRows {
				err = fmt.Errorf("Check Error: returned %d results for %d rows", len(mask), numRows)
				mask = nil
			}
		}()
		mask, err = pred(cols)
		return
	}
}
