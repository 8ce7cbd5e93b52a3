package stats

import (
	"time"
)

// RunStatistics contains statistics about a single validation run. Field runtimes
// may be recorded concurrently, as long as each field index is recorded by one goroutine.
type RunStatistics struct {
	started       bool
	finished      bool
	startTime     time.Time
	totalRuntime  int64
	rowsProcessed int
	fieldRuntimes []int64 // content-check runtime of each field, by declaration index
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numFields int, numRows int) {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsProcessed = numRows
		rs.fieldRuntimes = make([]int64, numFields)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.totalRuntime = time.Since(rs.startTime).Nanoseconds()
	rs.finished = true
}

// EndField tracks the end of the content checks of a field, which began at start
func (rs *RunStatistics) EndField(fidx int, start time.Time) {
	rs.fieldRuntimes[fidx] = time.Since(start).Nanoseconds()
}

// GetStartTime returns the start time of the validation run
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the validation run
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return time.Duration(rs.totalRuntime)
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of rows checked
func (rs *RunStatistics) GetNumRowsProcessed() int {
	return rs.rowsProcessed
}

// GetFieldRuntimes returns the content-check runtime of every field, by declaration index
func (rs *RunStatistics) GetFieldRuntimes() []time.Duration {
	res := make([]time.Duration, len(rs.fieldRuntimes))
	for i, d := range rs.fieldRuntimes {
		res[i] = time.Duration(d)
	}
	return res
}

// GetSlowestField returns the index and runtime of the field whose content checks took longest, or -1
func (rs *RunStatistics) GetSlowestField() (int, time.Duration) {
	slowest := -1
	var max int64 = -1
	for i, d := range rs.fieldRuntimes {
		if d > max {
			slowest, max = i, d
		}
	}
	if slowest < 0 {
		return -1, 0
	}
	return slowest, time.Duration(max)
}
