package stats

import (
	"testing"
	"time"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func report(username string, year, total int) v1.Report {
	return v1.Report{
		Username: username,
		Year:     year,
		Summary: v1.Summary{
			TotalCount: total,
			ByDecade:   []v1.DecadeCount{{Decade: 2000, Count: total}},
		},
	}
}

func TestSummaryCache_GetPut(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)

	_, ok := c.Get("alice", 2024)
	require.False(t, ok)

	c.Put(report("alice", 2024, 3))
	got, ok := c.Get("alice", 2024)
	require.True(t, ok)
	require.Equal(t, 3, got.Summary.TotalCount)

	_, ok = c.Get("alice", 2023)
	require.False(t, ok, "years are cached separately")
}

func TestSummaryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)

	c.Put(report("a", 2024, 1))
	c.Put(report("b", 2024, 2))
	_, _ = c.Get("a", 2024) // a is now most recent
	c.Put(report("c", 2024, 3))

	_, ok := c.Get("b", 2024)
	require.False(t, ok, "b was least recently used")
	_, ok = c.Get("a", 2024)
	require.True(t, ok)
	_, ok = c.Get("c", 2024)
	require.True(t, ok)
	require.Equal(t, 2, c.Len())
}

func TestSummaryCache_PutReplaces(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)

	c.Put(report("a", 2024, 1))
	c.Put(report("a", 2024, 5))

	got, ok := c.Get("a", 2024)
	require.True(t, ok)
	require.Equal(t, 5, got.Summary.TotalCount)
	require.Equal(t, 1, c.Len())
}

func TestSummaryCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewSummaryCache(2, 10*time.Minute)
	c.nowFn = func() time.Time { return now }

	c.Put(report("a", 2024, 1))

	now = now.Add(9 * time.Minute)
	_, ok := c.Get("a", 2024)
	require.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("a", 2024)
	require.False(t, ok)
	require.Equal(t, 0, c.Len(), "expired entries are dropped on access")
}

func TestSummaryCache_IsolatesCallers(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)

	r := report("a", 2024, 1)
	c.Put(r)
	r.Summary.ByDecade[0].Count = 42

	got, _ := c.Get("a", 2024)
	require.Equal(t, 1, got.Summary.ByDecade[0].Count)

	got.Summary.ByDecade[0].Count = 7
	again, _ := c.Get("a", 2024)
	require.Equal(t, 1, again.Summary.ByDecade[0].Count)
}

func TestSummaryCache_Invalidate(t *testing.T) {
	c := NewSummaryCache(4, time.Minute)
	c.Put(report("a", 2024, 1))
	c.Put(report("b", 2024, 1))

	c.Invalidate("a", 2024)
	c.Invalidate("missing", 2024)
	_, ok := c.Get("a", 2024)
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	_, ok = c.Get("b", 2024)
	require.True(t, ok, "other reports stay cached")
}

func TestNewSummaryCache_RejectsZeroCapacity(t *testing.T) {
	require.Panics(t, func() { NewSummaryCache(0, time.Minute) })
}
