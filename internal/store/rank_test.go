package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankBetween_PrefixAdjacent_NoSpace(t *testing.T) {
	// "y" < "y0" leaves no lexicographic string strictly between them.
	_, err := RankBetween("y", "y0")
	assert.ErrorIs(t, err, errNoRankSpace)
}

func TestRankBetween_Bounds(t *testing.T) {
	r, err := RankBetween("", "")
	require.NoError(t, err)
	assert.Equal(t, "h", r)

	r, err = RankBetween("a", "b")
	require.NoError(t, err)
	assert.True(t, "a" < r && r < "b", "got %q", r)

	_, err = RankBetween("b", "a")
	assert.Error(t, err)
}

func TestRankBetweenUnique_AvoidsCollision(t *testing.T) {
	existing := map[string]bool{"p": true}
	r, err := RankBetweenUnique(existing, "m", "t")
	require.NoError(t, err)
	assert.NotEqual(t, "p", r)
	assert.True(t, "m" < r && r < "t")
}

func TestPlanReorderRanks_FastPathOnlyTouchesMovedLane(t *testing.T) {
	lanes := []rankedLane{{"a", "b"}, {"b", "h"}, {"c", "q"}}

	res, err := PlanReorderRanks(lanes, "c", 0)
	require.NoError(t, err)
	require.Len(t, res.RankByID, 1)
	assert.False(t, res.UsedFallback)
	assert.Less(t, res.RankByID["c"], "b")
}

func TestPlanReorderRanks_PrefixAdjacentFallsBackToWindow(t *testing.T) {
	a := rankedLane{"a", "y"}
	b := rankedLane{"b", "y0"}
	x := rankedLane{"x", "h"}

	// After removing x the order is [a, b]; put x between them.
	res, err := PlanReorderRanks([]rankedLane{a, b, x}, "x", 1)
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)

	apply := func(l rankedLane) rankedLane {
		if r, ok := res.RankByID[l.ID]; ok {
			l.Rank = r
		}
		return l
	}
	final := []rankedLane{apply(a), apply(b), apply(x)}
	sortLanesByRank(final)
	assert.Equal(t, []string{"a", "x", "b"}, []string{final[0].ID, final[1].ID, final[2].ID})
}

func TestPlanLaneOrder(t *testing.T) {
	cur := []rankedLane{{"s1", "b"}, {"s2", "h"}, {"s3", "q"}}

	same, err := planLaneOrder(cur, []string{"s1", "s2", "s3"})
	require.NoError(t, err)
	assert.Empty(t, same)

	single, err := planLaneOrder(cur, []string{"s2", "s1", "s3"})
	require.NoError(t, err)
	assert.Len(t, single, 1)

	full, err := planLaneOrder(cur, []string{"s3", "s2", "s1"})
	require.NoError(t, err)
	assert.Len(t, full, 3)
	assert.True(t, full["s3"] < full["s2"] && full["s2"] < full["s1"])
}

func TestRankBetweenUnique_OpenEndedUpper(t *testing.T) {
	existing := map[string]bool{"h0": true, "h00": true}
	r, err := RankBetweenUnique(existing, "h", "")
	require.NoError(t, err)
	assert.False(t, existing[r], "got existing rank %q", r)
	assert.Greater(t, r, "h")
}
