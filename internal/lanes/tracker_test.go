package lanes

import (
	"testing"

	"restack-cli/internal/pointer"
	"restack-cli/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct {
	id     string
	rect   pointer.Rect
	handle bool
	dimmed bool
}

func (b *box) ID() string                                   { return b.id }
func (b *box) Rect() pointer.Rect                           { return b.rect }
func (b *box) Listen(pointer.Kind, pointer.Listener) func() { return func() {} }
func (b *box) IsDragHandle() bool                           { return b.handle }
func (b *box) SetDimmed(v bool)                             { b.dimmed = v }

type row struct {
	box
	scroll   int
	children []pointer.Element
}

func (r *row) ScrollLeft() int             { return r.scroll }
func (r *row) Children() []pointer.Element { return r.children }

func threeLanes(left int) *row {
	r := &row{box: box{id: "board", rect: pointer.Rect{X: left, W: 300, H: 10}}}
	for i, id := range []string{"L1", "L2", "L3"} {
		r.children = append(r.children, &box{id: id, rect: pointer.Rect{X: left + i*100, W: 100, H: 10}})
	}
	return r
}

func self(s string) string { return s }

func startDrag(t *testing.T, lanes *[]string, id string) (*Tracker[string], *box) {
	t.Helper()
	tr := New(session.New(), self, nil)
	handle := &box{id: id + "-handle", handle: true}
	tr.PointerDown(handle)
	require.True(t, tr.DragStart(id, lanes, handle))
	return tr, handle
}

func TestDropIndex(t *testing.T) {
	w := []int{100, 100, 100}
	cases := []struct {
		name      string
		mouseLeft int
		current   int
		want      int
	}{
		{"first lane past second midpoint", 250, 0, 1},
		{"first lane before second midpoint", 140, 0, 0},
		{"first lane past everything", 999, 0, 2},
		{"last lane to front", 10, 2, 0},
		{"last lane past second midpoint stays", 160, 2, 2},
		{"middle lane over itself", 120, 1, 1},
		{"exactly on a midpoint is not crossed", 150, 2, 1},
		{"no current lane", 999, -1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DropIndex(tc.mouseLeft, w, tc.current))
		})
	}
}

func TestTracker_PastSecondMidpointMovesFirstLane(t *testing.T) {
	lanes := []string{"L1", "L2", "L3"}
	tr, handle := startDrag(t, &lanes, "L1")
	assert.True(t, handle.dimmed)

	assert.True(t, tr.DragOver(250, threeLanes(0)))
	assert.Equal(t, []string{"L2", "L1", "L3"}, lanes, "caller's slice is reordered live")

	assert.True(t, tr.Drop())
	assert.False(t, handle.dimmed)
	assert.False(t, tr.Active())
}

func TestTracker_AccountsForContainerOffsetAndScroll(t *testing.T) {
	lanes := []string{"L1", "L2", "L3"}
	tr, _ := startDrag(t, &lanes, "L1")

	c := threeLanes(40)
	c.scroll = 100
	// mouseLeft = 190 - 40 + 100 = 250.
	tr.DragOver(190, c)
	assert.Equal(t, []string{"L2", "L1", "L3"}, lanes)
}

func TestTracker_NoMidpointCrossedLeavesOrder(t *testing.T) {
	lanes := []string{"L1", "L2", "L3"}
	tr, _ := startDrag(t, &lanes, "L2")

	assert.False(t, tr.DragOver(130, threeLanes(0)))
	assert.Equal(t, []string{"L1", "L2", "L3"}, lanes)
	assert.False(t, tr.Drop())
}

func TestTracker_PastLastSiblingClamps(t *testing.T) {
	lanes := []string{"L1", "L2", "L3"}
	tr, _ := startDrag(t, &lanes, "L1")

	tr.DragOver(5000, threeLanes(0))
	assert.Equal(t, []string{"L2", "L3", "L1"}, lanes)
}

func TestTracker_CancelRestoresOrder(t *testing.T) {
	lanes := []string{"L1", "L2", "L3"}
	tr, handle := startDrag(t, &lanes, "L3")

	tr.DragOver(10, threeLanes(0))
	require.Equal(t, []string{"L3", "L1", "L2"}, lanes)

	tr.Cancel()
	tr.Cancel()
	assert.Equal(t, []string{"L1", "L2", "L3"}, lanes)
	assert.False(t, handle.dimmed)
}

func TestTracker_RequiresHandleAndSingleDrag(t *testing.T) {
	lanes := []string{"L1", "L2"}
	s := session.New()
	tr := New(s, self, nil)

	tr.PointerDown(&box{id: "button"})
	assert.False(t, tr.DragStart("L1", &lanes, nil))

	tr.PointerDown(&box{id: "h", handle: true})
	require.True(t, tr.DragStart("L1", &lanes, nil))

	other := New(s, self, nil)
	other.PointerDown(&box{id: "h2", handle: true})
	assert.False(t, other.DragStart("L2", &lanes, nil))
}
