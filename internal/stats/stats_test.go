package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	rs := &RunStatistics{}
	idx, d := rs.GetSlowestField()
	require.Equal(t, -1, idx)
	require.Equal(t, time.Duration(0), d)

	rs.Start(3, 42)
	rs.Start(5, 7) // ignored once started
	rs.EndField(0, time.Now())
	rs.EndField(2, time.Now().Add(-time.Hour))
	rs.Finish()

	require.Equal(t, 42, rs.GetNumRowsProcessed())
	require.Len(t, rs.GetFieldRuntimes(), 3)
	require.Equal(t, time.Duration(0), rs.GetFieldRuntimes()[1])
	idx, d = rs.GetSlowestField()
	require.Equal(t, 2, idx)
	require.True(t, d >= time.Hour)
	require.Equal(t, rs.GetRuntime(), rs.GetRuntime())
	require.False(t, rs.GetStartTime().IsZero())
}
