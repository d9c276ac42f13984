package observ_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nova/internal/observ"
)

func TestTimerPhasesInOrder(t *testing.T) {
	tm := observ.NewTimer()
	load := tm.Begin("load")
	tm.End(load, "3 files")
	tm.Add("parse", 2*time.Millisecond)
	tm.Add("parse", 3*time.Millisecond)
	tm.End(99, "ignored")

	rep := tm.Report()
	require.Len(t, rep.Phases, 2)
	require.Equal(t, "load", rep.Phases[0].Name)
	require.Equal(t, "3 files", rep.Phases[0].Note)
	require.Equal(t, "parse", rep.Phases[1].Name)
	require.Equal(t, 2, rep.Phases[1].Count)
	require.InDelta(t, 5.0, rep.Phases[1].DurationMS, 0.001)

	sum := tm.Summary()
	require.True(t, strings.HasPrefix(sum, "timings:\n"))
	require.Contains(t, sum, "x2")
	require.Contains(t, sum, "total")
}

func TestTimerConcurrentAdd(t *testing.T) {
	tm := observ.NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex", time.Microsecond)
		}()
	}
	wg.Wait()
	require.Equal(t, 8, tm.Report().Phases[0].Count)
}

func TestEmptyReport(t *testing.T) {
	require.Equal(t, observ.Report{}, observ.NewTimer().Report())
}
