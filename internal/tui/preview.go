package tui

import "restack-cli/internal/pointer"

// preview is the drag ghost drawn next to the pointer.
type preview struct {
	label    string
	disposed bool
	onDone   func(*preview)
}

func (p *preview) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.onDone != nil {
		p.onDone(p)
	}
}

// CreateDragPreview implements pointer.PreviewFactory.
func (m *Board) CreateDragPreview(source string) pointer.PreviewHandle {
	p := &preview{label: source, onDone: func(p *preview) {
		if m.preview == p {
			m.preview = nil
		}
	}}
	m.preview = p
	return p
}
