package tui

import (
	"fmt"

	"restack-cli/internal/drag"
	"restack-cli/internal/eventloop"
	"restack-cli/internal/model"
	"restack-cli/internal/pointer"
	"restack-cli/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	// Timers armed while handling msg become tick commands here.
	return m, tea.Batch(cmd, m.sched.Drain())
}

func (m *Board) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		m.relayout()
		return nil

	case loadedMsg:
		if msg.err != nil {
			m.fail("load", msg.err)
			return nil
		}
		if m.ctrl.Session().Active() {
			return nil
		}
		m.lanes, m.stacks = msg.lanes, msg.stacks
		m.clampScroll()
		m.relayout()
		return nil

	case eventloop.FireMsg:
		m.sched.Fire(msg)
		return nil

	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.MouseMsg:
		return m.onMouse(msg)
	}
	return nil
}

func (m *Board) onKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelDrag()
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Session().Active() {
			m.cancelDrag()
			m.status = "drag cancelled"
		}
	case key.Matches(msg, m.keys.Left):
		m.scroll -= colWidth
		m.clampScroll()
		m.relayout()
	case key.Matches(msg, m.keys.Right):
		m.scroll += colWidth
		m.clampScroll()
		m.relayout()
	case key.Matches(msg, m.keys.Reload):
		if !m.ctrl.Session().Active() {
			return m.loadCmd()
		}
	}
	return nil
}

func (m *Board) onMouse(msg tea.MouseMsg) tea.Cmd {
	m.mouseX, m.mouseY = msg.X, msg.Y
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.onPress(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.onMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		return m.onRelease(msg.X, msg.Y)
	}
	return nil
}

func (m *Board) onPress(x, y int) {
	if m.ctrl.Session().Active() {
		return
	}
	b := m.hit(x, y, func(b *box) bool { return b.kind != boxSeries })
	if b == nil {
		m.ctrl.PointerDown(m.root)
		m.pressed = nil
		return
	}
	m.ctrl.PointerDown(b)
	m.pressed = &press{b: b, x: x, y: y}
}

func (m *Board) onMotion(x, y int) {
	s := m.ctrl.Session()
	if !s.Active() {
		if m.pressed == nil || abs(x-m.pressed.x)+abs(y-m.pressed.y) < dragThreshold {
			return
		}
		m.beginDrag(m.pressed.b)
		m.pressed = nil
		s = m.ctrl.Session()
	}

	switch s.Kind {
	case session.KindLane:
		if m.ctrl.LaneOver(x, m.row) {
			m.relayout()
		}
	case session.KindCommit:
		m.trackHover(x, y)
	}
}

func (m *Board) beginDrag(b *box) {
	switch b.kind {
	case boxLane:
		if m.ctrl.BeginLaneDrag(b, b.stackID, &m.lanes) {
			m.status = "moving lane " + b.stackID
		}
	case boxCommit:
		p := model.DragPayload{
			SourceStackID:    b.stackID,
			SourceSeriesName: b.target.SeriesName,
			CommitID:         b.target.Anchor.Commit,
		}
		if m.ctrl.BeginCommitDrag(b, p) {
			m.status = "moving " + string(p.CommitID)
		}
	}
}

// trackHover delivers enter/leave/over to the drop target under the pointer.
// Enter is re-sent on every move; zones that were not armed yet when the
// pointer arrived pick it up once their activation delay has passed.
func (m *Board) trackHover(x, y int) {
	under := m.hit(x, y, func(b *box) bool { return b.reg != nil })
	if m.hover != nil && m.hover != under {
		m.hover.send(pointer.DragLeave, x, y)
	}
	m.hover = under
	if under != nil {
		under.send(pointer.DragEnter, x, y)
		under.send(pointer.DragOver, x, y)
	}
}

func (m *Board) onRelease(x, y int) tea.Cmd {
	m.pressed = nil
	s := m.ctrl.Session()
	if !s.Active() {
		return nil
	}
	if s.Kind == session.KindCommit {
		m.trackHover(x, y)
		if m.hover != nil {
			m.hover.send(pointer.Drop, x, y)
		}
	}
	res, err := m.ctrl.Finish(m.ctx)
	m.hover = nil
	if err != nil {
		m.fail("drop", err)
		// The board may show an order that was not saved.
		return m.loadCmd()
	}
	m.apply(res)
	return nil
}

func (m *Board) apply(res drag.Result) {
	switch res.Outcome {
	case drag.OutcomeMoved:
		m.stacks[res.StackID] = res.Stack
		m.status = fmt.Sprintf("moved to %s", res.Target)
	case drag.OutcomeLanesReordered:
		m.status = "lanes reordered"
	case drag.OutcomeRejected:
		m.status = "already there"
	default:
		m.status = ""
	}
	m.err = nil
	m.relayout()
}

func (m *Board) cancelDrag() {
	m.ctrl.Cancel()
	m.pressed = nil
	m.hover = nil
	m.relayout()
}

// fail reports err on the status line and in the log.
func (m *Board) fail(op string, err error) {
	m.err = err
	m.status = ""
	m.log.Error("board "+op+" failed", zap.Error(err))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
