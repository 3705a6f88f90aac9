// Package session holds the state of the one drag in flight. A Session is
// owned by a single controller and shared by pointer with the components
// that need it; nothing here is global.
package session

import (
	"time"

	"restack-cli/internal/model"
	"restack-cli/internal/pointer"

	"github.com/google/uuid"
)

type Kind int

const (
	KindNone Kind = iota
	KindCommit
	KindLane
)

func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindLane:
		return "lane"
	default:
		return "none"
	}
}

type Session struct {
	ID        string
	Kind      Kind
	Payload   model.DragPayload
	LaneID    string
	StartedAt time.Time
	Preview   pointer.PreviewHandle

	// HandleValid is set on pointer-down and consumed by Begin. Only
	// elements marked as drag handles may start a drag.
	HandleValid bool

	now func() time.Time
}

func New() *Session { return &Session{now: time.Now} }

// Active reports whether a drag is in flight.
func (s *Session) Active() bool { return s.Kind != KindNone }

// PointerDown records whether the pressed element is a drag handle.
func (s *Session) PointerDown(el pointer.Element) {
	if s.Active() {
		return
	}
	s.HandleValid = el != nil && pointer.IsHandle(el)
}

// Begin starts a drag of the given kind. It fails when a drag is already in
// flight or the last pointer-down was not on a handle.
func (s *Session) Begin(k Kind) bool {
	if s.Active() || !s.HandleValid || k == KindNone {
		return false
	}
	s.Kind = k
	s.ID = uuid.NewString()
	if s.now == nil {
		s.now = time.Now
	}
	s.StartedAt = s.now()
	s.HandleValid = false
	return true
}

// End disposes the preview and clears the session. Safe to call repeatedly.
func (s *Session) End() {
	if s.Preview != nil {
		s.Preview.Dispose()
	}
	now := s.now
	*s = Session{now: now}
}
