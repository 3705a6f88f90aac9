package tui

import (
	"fmt"

	"restack-cli/internal/dropzone"
	"restack-cli/internal/model"
	"restack-cli/internal/pointer"
)

type boxKind int

const (
	// boxRoot is the board background and the lane strip.
	boxRoot boxKind = iota
	boxLane
	boxSeries
	boxCommit
)

// box is one hit-testable region of the board. Boxes are kept across
// relayouts so listeners bound to them survive re-rendering.
type box struct {
	id     string
	kind   boxKind
	rect   pointer.Rect
	dimmed bool
	ls     pointer.Listeners

	stackID string
	target  model.DropTarget // series and commit rows
	reg     *dropzone.Registration[model.DragPayload]
	seen    bool
}

func (b *box) ID() string         { return b.id }
func (b *box) Rect() pointer.Rect { return b.rect }
func (b *box) Listen(k pointer.Kind, fn pointer.Listener) func() {
	return b.ls.Add(k, fn)
}

// Lane titles and commit rows start drags; series headers only receive them.
func (b *box) IsDragHandle() bool { return b.kind == boxLane || b.kind == boxCommit }
func (b *box) SetDimmed(v bool)   { b.dimmed = v }

func (b *box) send(k pointer.Kind, x, y int) {
	b.ls.Dispatch(pointer.Event{Kind: k, X: x, Y: y})
}

func (b *box) zoneState() (armed, hovered bool) {
	if b.reg == nil {
		return false, false
	}
	z := b.reg.Zone()
	return z.Activated(), z.Hovered()
}

// targetKey names the box of a drop target. The series top and a commit
// named "top" get different keys.
func targetKey(stackID string, t model.DropTarget) string {
	if t.Anchor.IsTop() {
		return fmt.Sprintf("top/%q/%q", stackID, t.SeriesName)
	}
	return fmt.Sprintf("after/%q/%q/%q", stackID, t.SeriesName, t.Anchor.Commit)
}

// laneRow is the horizontally scrolling strip holding the lanes.
type laneRow struct {
	b      box
	scroll *int
	lanes  func() []pointer.Element
}

func (r *laneRow) ID() string         { return r.b.id }
func (r *laneRow) Rect() pointer.Rect { return r.b.rect }
func (r *laneRow) Listen(k pointer.Kind, fn pointer.Listener) func() {
	return r.b.Listen(k, fn)
}
func (r *laneRow) ScrollLeft() int             { return *r.scroll }
func (r *laneRow) Children() []pointer.Element { return r.lanes() }
