// Package lanes reorders lanes live while one is dragged across its siblings.
//
// There are no per-slot drop targets: the insertion index is derived from
// the rendered widths of the sibling lanes and the pointer position, and the
// caller's slice is rearranged in place as soon as the index changes.
package lanes

import (
	"restack-cli/internal/pointer"
	"restack-cli/internal/session"

	"go.uber.org/zap"
)

// DropIndex returns the index the dragged lane should occupy.
//
// widths are the rendered sibling widths left to right, including the dragged
// lane at current. A sibling's midpoint is crossed only when mouseLeft is
// strictly past it. The scan stops at the first sibling not yet crossed; since
// the dragged lane leaves its own slot, positions after it shift down by one.
// Past the last sibling the result is the last index.
func DropIndex(mouseLeft int, widths []int, current int) int {
	cum := 0
	for i, w := range widths {
		// Doubled to keep odd widths exact.
		if 2*cum+w >= 2*mouseLeft {
			if current >= 0 && i > current {
				return i - 1
			}
			return i
		}
		cum += w
	}
	if current >= 0 {
		return len(widths) - 1
	}
	return len(widths)
}

// Tracker drives one lane drag over a caller-owned slice of lanes.
type Tracker[T any] struct {
	s   *session.Session
	key func(T) string
	log *zap.Logger

	lanes   *[]T
	initial []T
	el      pointer.Element
}

// New returns a tracker bound to s. key extracts the lane id from an element
// of the tracked slice.
func New[T any](s *session.Session, key func(T) string, log *zap.Logger) *Tracker[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker[T]{s: s, key: key, log: log}
}

// Active reports whether this tracker owns the current drag.
func (t *Tracker[T]) Active() bool {
	return t.lanes != nil && t.s.Kind == session.KindLane
}

// PointerDown records handle validity for the next DragStart.
func (t *Tracker[T]) PointerDown(el pointer.Element) { t.s.PointerDown(el) }

// DragStart begins dragging laneID within lanes. el is the rendered lane; it
// is dimmed for the duration of the drag when it supports it.
func (t *Tracker[T]) DragStart(laneID string, lanes *[]T, el pointer.Element) bool {
	if lanes == nil || t.indexOf(*lanes, laneID) < 0 {
		return false
	}
	if !t.s.Begin(session.KindLane) {
		return false
	}
	t.s.LaneID = laneID
	t.lanes = lanes
	t.initial = append([]T(nil), (*lanes)...)
	t.el = el
	if d, ok := el.(pointer.Dimmable); ok {
		d.SetDimmed(true)
	}
	t.log.Debug("lane drag started", zap.String("lane", laneID), zap.String("session", t.s.ID))
	return true
}

// DragOver recomputes the insertion index for a pointer at absolute x over
// container c and moves the dragged lane when it changed.
func (t *Tracker[T]) DragOver(x int, c pointer.Container) bool {
	if !t.Active() || c == nil {
		return false
	}
	mouseLeft := x - c.Rect().X + c.ScrollLeft()

	children := c.Children()
	lanes := *t.lanes
	if len(children) != len(lanes) {
		t.log.Warn("lane container out of sync with lanes",
			zap.Int("children", len(children)), zap.Int("lanes", len(lanes)))
		return false
	}
	widths := make([]int, len(children))
	for i, ch := range children {
		widths[i] = ch.Rect().W
	}

	cur := t.indexOf(lanes, t.s.LaneID)
	next := DropIndex(mouseLeft, widths, cur)
	if next == cur || cur < 0 {
		return false
	}
	moved := lanes[cur]
	lanes = append(lanes[:cur], lanes[cur+1:]...)
	lanes = append(lanes[:next], append([]T{moved}, lanes[next:]...)...)
	*t.lanes = lanes
	t.log.Debug("lane moved", zap.String("lane", t.s.LaneID), zap.Int("from", cur), zap.Int("to", next))
	return true
}

// Drop ends the drag. The caller's slice already holds the final order;
// changed reports whether it differs from the order at DragStart.
func (t *Tracker[T]) Drop() (changed bool) {
	if !t.Active() {
		return false
	}
	changed = t.changed()
	t.finish()
	return changed
}

// Cancel ends the drag and restores the order captured at DragStart.
func (t *Tracker[T]) Cancel() {
	if !t.Active() {
		return
	}
	*t.lanes = append((*t.lanes)[:0], t.initial...)
	t.finish()
}

func (t *Tracker[T]) finish() {
	if d, ok := t.el.(pointer.Dimmable); ok {
		d.SetDimmed(false)
	}
	t.lanes, t.initial, t.el = nil, nil, nil
	t.s.End()
}

func (t *Tracker[T]) changed() bool {
	cur := *t.lanes
	if len(cur) != len(t.initial) {
		return true
	}
	for i := range cur {
		if t.key(cur[i]) != t.key(t.initial[i]) {
			return true
		}
	}
	return false
}

func (t *Tracker[T]) indexOf(lanes []T, id string) int {
	for i, l := range lanes {
		if t.key(l) == id {
			return i
		}
	}
	return -1
}
