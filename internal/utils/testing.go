package utils

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	MEMORY_STATS_SETTLE_DURATION = 20 * time.Millisecond
)

// AssertNoMemoryLeak fails the test if more than maxAllocDelta bytes are still allocated compared to startStats,
// after two garbage collections.
func AssertNoMemoryLeak(t *testing.T, startStats *runtime.MemStats, maxAllocDelta uint64) {
	runtime.GC()
	time.Sleep(MEMORY_STATS_SETTLE_DURATION)
	runtime.GC()

	stats := new(runtime.MemStats)
	runtime.ReadMemStats(stats)

	if stats.Alloc <= startStats.Alloc {
		return
	}

	delta := stats.Alloc - startStats.Alloc
	switch {
	case delta <= maxAllocDelta:
	case delta > 1_000_000:
		assert.FailNowf(t, "memory leak", "%d MB", delta/1_000_000)
	case delta > 1_000:
		assert.FailNowf(t, "memory leak", "%d kB", delta/1_000)
	default:
		assert.FailNowf(t, "memory leak", "%d B", delta)
	}
}
