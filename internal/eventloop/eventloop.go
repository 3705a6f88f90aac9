// Package eventloop provides cancel-safe timers that fire on the UI loop.
//
// The drag engine is single threaded: every callback, including timer
// callbacks, must run on the goroutine that dispatches pointer events. Timers
// therefore never call back from their own goroutine; the Tea scheduler turns
// them into messages and the Manual scheduler fires them from Advance.
package eventloop

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Timer is a scheduled callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Scheduler schedules fn to run on the UI loop after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

type entry struct {
	seq     uint64
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (e *entry) Stop() bool {
	if e.stopped || e.fired {
		return false
	}
	e.stopped = true
	return true
}

// Manual is a deterministic scheduler for tests. Time only moves on Advance.
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []*entry
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) After(d time.Duration, fn func()) Timer {
	m.seq++
	e := &entry{seq: m.seq, due: m.now + d, fn: fn}
	m.pending = append(m.pending, e)
	return e
}

// Advance moves the clock forward and fires due timers in due order.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	for {
		sort.SliceStable(m.pending, func(i, j int) bool { return m.pending[i].due < m.pending[j].due })
		if len(m.pending) == 0 || m.pending[0].due > m.now {
			return
		}
		e := m.pending[0]
		m.pending = m.pending[1:]
		if e.stopped {
			continue
		}
		e.fired = true
		e.fn()
	}
}

// Pending returns the number of timers that are neither fired nor stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, e := range m.pending {
		if !e.stopped {
			n++
		}
	}
	return n
}

// FireMsg is delivered to the Bubble Tea model when a Tea timer elapses.
type FireMsg struct {
	Seq uint64
}

// Tea schedules timers as tea.Tick commands. The model collects the
// commands with Drain after each Update and routes FireMsg back into Fire.
type Tea struct {
	seq     uint64
	pending map[uint64]*entry
	cmds    []tea.Cmd
}

func NewTea() *Tea { return &Tea{pending: map[uint64]*entry{}} }

func (t *Tea) After(d time.Duration, fn func()) Timer {
	t.seq++
	seq := t.seq
	e := &entry{seq: seq, fn: fn}
	t.pending[seq] = e
	t.cmds = append(t.cmds, tea.Tick(d, func(time.Time) tea.Msg { return FireMsg{Seq: seq} }))
	return e
}

// Drain returns the tick commands queued since the last call.
func (t *Tea) Drain() tea.Cmd {
	if len(t.cmds) == 0 {
		return nil
	}
	cmds := t.cmds
	t.cmds = nil
	return tea.Batch(cmds...)
}

// Fire runs the timer for msg unless it was stopped.
func (t *Tea) Fire(msg FireMsg) {
	e, ok := t.pending[msg.Seq]
	if !ok {
		return
	}
	delete(t.pending, msg.Seq)
	if e.stopped {
		return
	}
	e.fired = true
	e.fn()
}
