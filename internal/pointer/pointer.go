// Package pointer abstracts the presentation layer the drag engine runs on:
// elements with measurable geometry, pointer events and listener
// registration. The board TUI implements it on top of terminal mouse events;
// tests implement it with plain structs.
package pointer

// Kind is the type of a pointer event delivered to an element listener.
type Kind int

const (
	DragEnter Kind = iota
	DragLeave
	DragOver
	Drop
)

func (k Kind) String() string {
	switch k {
	case DragEnter:
		return "dragenter"
	case DragLeave:
		return "dragleave"
	case DragOver:
		return "dragover"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// Event is a pointer event. X/Y are absolute coordinates.
type Event struct {
	Kind Kind
	X, Y int
}

// Rect is an element's rendered bounding box.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Listener receives events for one element.
type Listener func(Event)

// Element is a rendered region that can carry listeners.
//
// Listen must return a release func; calling it more than once is a no-op.
type Element interface {
	ID() string
	Rect() Rect
	Listen(k Kind, fn Listener) (release func())
}

// Handle is implemented by elements that may start a drag.
type Handle interface {
	IsDragHandle() bool
}

// IsHandle reports whether el is explicitly marked as a drag handle.
func IsHandle(el Element) bool {
	h, ok := el.(Handle)
	return ok && h.IsDragHandle()
}

// Dimmable is implemented by elements that render a dragged state.
type Dimmable interface {
	SetDimmed(bool)
}

// Container is the scrollable parent of a row of lanes.
type Container interface {
	Element
	ScrollLeft() int
	Children() []Element
}

// PreviewHandle is a live drag preview. Dispose must be idempotent.
type PreviewHandle interface {
	Dispose()
}

// PreviewFactory creates a drag preview for the dragged source. Rendering is
// entirely up to the implementation.
type PreviewFactory interface {
	CreateDragPreview(source string) PreviewHandle
}
