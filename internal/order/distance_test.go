package order

import (
	"testing"

	"restack-cli/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSlots_TopThenCommitsPerSeries(t *testing.T) {
	got := Slots(twoSeries())
	want := []string{"A:top", "A:c1", "A:c2", "B:top", "B:c3"}
	var names []string
	for _, s := range got {
		names = append(names, s.String())
	}
	assert.Equal(t, want, names)
}

func TestDistance_SelfIsZero(t *testing.T) {
	st := twoSeries()
	for _, s := range Slots(st) {
		assert.Equal(t, 0, Distance(st, s, s), "slot %s", s)
	}
}

func TestDistance_Antisymmetric(t *testing.T) {
	st := twoSeries()
	slots := Slots(st)
	for _, a := range slots {
		for _, b := range slots {
			assert.Equal(t, -Distance(st, b, a), Distance(st, a, b), "%s vs %s", a, b)
		}
	}
}

func TestDistance_KnownValuesAndMissing(t *testing.T) {
	st := twoSeries()
	top := model.DropTarget{SeriesName: "A", Anchor: model.AnchorTop}
	c3 := model.DropTarget{SeriesName: "B", Anchor: model.After("c3")}
	assert.Equal(t, 4, Distance(st, c3, top))
	assert.Equal(t, -4, Distance(st, top, c3))

	missing := model.DropTarget{SeriesName: "Z", Anchor: model.AnchorTop}
	assert.Equal(t, 0, Distance(st, missing, top))
	assert.Equal(t, 0, Distance(st, top, missing))
}

func TestIsAdjacentNoop(t *testing.T) {
	st := model.Stack{ID: "s", Series: []model.Series{
		{Name: "A", CommitIDs: ids("c1", "c2")},
		{Name: "B", CommitIDs: ids("c3")},
	}}

	// Own slot and the slot right above are rejected even though ResolveMove
	// accepts the latter as a legal no-op.
	assert.True(t, IsAdjacentNoop(st, "c2", model.DropTarget{SeriesName: "A", Anchor: model.After("c2")}))
	assert.True(t, IsAdjacentNoop(st, "c2", model.DropTarget{SeriesName: "A", Anchor: model.After("c1")}))
	assert.True(t, IsAdjacentNoop(st, "c1", model.DropTarget{SeriesName: "A", Anchor: model.AnchorTop}))
	assert.True(t, IsAdjacentNoop(st, "c3", model.DropTarget{SeriesName: "B", Anchor: model.AnchorTop}))

	assert.False(t, IsAdjacentNoop(st, "c2", model.DropTarget{SeriesName: "A", Anchor: model.AnchorTop}))
	assert.False(t, IsAdjacentNoop(st, "c3", model.DropTarget{SeriesName: "A", Anchor: model.After("c2")}))
	assert.False(t, IsAdjacentNoop(st, "c1", model.DropTarget{SeriesName: "B", Anchor: model.After("c3")}))
}
