package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"restack-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWS struct {
	lanes      []model.Lane
	stacks     map[string]model.Stack
	stackCalls map[string][]model.SeriesRecord
	laneCalls  [][]string
	err        error
}

func newFakeWS() *fakeWS {
	return &fakeWS{
		lanes: []model.Lane{{StackID: "s1", Title: "auth"}, {StackID: "s2", Title: "billing"}},
		stacks: map[string]model.Stack{
			"s1": {ID: "s1", Series: []model.Series{
				{Name: "A", CommitIDs: []model.CommitID{"c1", "c2"}},
				{Name: "B", CommitIDs: []model.CommitID{"c3"}},
			}},
			"s2": {ID: "s2", Series: []model.Series{{Name: "main", CommitIDs: []model.CommitID{"d1"}}}},
		},
		stackCalls: map[string][]model.SeriesRecord{},
	}
}

func (f *fakeWS) Lanes(context.Context) ([]model.Lane, error) {
	return append([]model.Lane(nil), f.lanes...), nil
}

func (f *fakeWS) Stack(_ context.Context, id string) (model.Stack, error) {
	st, ok := f.stacks[id]
	if !ok {
		return model.Stack{}, errors.New("missing")
	}
	return st, nil
}

func (f *fakeWS) ReorderStack(_ context.Context, id string, o []model.SeriesRecord) error {
	if f.err != nil {
		return f.err
	}
	f.stackCalls[id] = o
	f.stacks[id] = model.FromRecords(id, o)
	return nil
}

func (f *fakeWS) ReorderLanes(_ context.Context, ids []string) error {
	f.laneCalls = append(f.laneCalls, ids)
	return f.err
}

// pump runs cmd and feeds every resulting message back into the board,
// including the activation ticks the drag schedules.
func pump(t *testing.T, m *Board, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			pump(t, m, c)
		}
	default:
		_, next := m.Update(msg)
		pump(t, m, next)
	}
}

func send(t *testing.T, m *Board, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	pump(t, m, cmd)
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func newTestBoard(t *testing.T, ws *fakeWS) *Board {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	m := NewBoard(context.Background(), ws, Options{ActivationDelay: time.Millisecond, SuppressAdjacent: true})
	pump(t, m, m.Init())
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	require.Len(t, m.lanes, 2)
	return m
}

// Rows: lane titles at y=2, series/commit rows from y=4. In s1: A:top=4,
// c1=5, c2=6, B:top=7, c3=8.

func TestBoard_CommitDragMovesAndPersists(t *testing.T) {
	ws := newFakeWS()
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 3, 5))
	send(t, m, mouse(tea.MouseActionMotion, 3, 6))
	require.True(t, m.ctrl.Session().Active())
	assert.Contains(t, m.View(), "⠿ c1")

	send(t, m, mouse(tea.MouseActionMotion, 3, 8))
	send(t, m, mouse(tea.MouseActionRelease, 3, 8))

	assert.False(t, m.ctrl.Session().Active())
	assert.Equal(t, []model.SeriesRecord{
		{Name: "A", CommitIDs: []string{"c2"}},
		{Name: "B", CommitIDs: []string{"c3", "c1"}},
	}, ws.stackCalls["s1"])
	assert.Equal(t, ws.stacks["s1"], m.stacks["s1"])
	assert.Contains(t, m.View(), "moved to B:c3")
	assert.NotContains(t, m.View(), "⠿")
}

func TestBoard_AdjacentDropIsIgnored(t *testing.T) {
	ws := newFakeWS()
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 3, 5))
	send(t, m, mouse(tea.MouseActionMotion, 3, 4))
	send(t, m, mouse(tea.MouseActionMotion, 4, 4))
	send(t, m, mouse(tea.MouseActionRelease, 4, 4))

	assert.Empty(t, ws.stackCalls)
	assert.Contains(t, m.View(), "already there")
}

func TestBoard_DropOnOtherStackIsCancelled(t *testing.T) {
	ws := newFakeWS()
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 3, 5))
	send(t, m, mouse(tea.MouseActionMotion, 33, 5))
	send(t, m, mouse(tea.MouseActionRelease, 33, 5))

	assert.Empty(t, ws.stackCalls)
	assert.False(t, m.ctrl.Session().Active())
}

func TestBoard_PressOnSeriesHeaderDoesNotDrag(t *testing.T) {
	m := newTestBoard(t, newFakeWS())

	send(t, m, mouse(tea.MouseActionPress, 3, 4))
	send(t, m, mouse(tea.MouseActionMotion, 3, 6))
	assert.False(t, m.ctrl.Session().Active())
}

func TestBoard_PressOnEmptySpaceIsNotAHandle(t *testing.T) {
	m := newTestBoard(t, newFakeWS())

	send(t, m, mouse(tea.MouseActionPress, 3, 5))
	require.True(t, m.ctrl.Session().HandleValid)

	send(t, m, mouse(tea.MouseActionRelease, 3, 5))
	send(t, m, mouse(tea.MouseActionPress, 90, 15))
	assert.False(t, m.root.IsDragHandle())
	assert.False(t, m.ctrl.Session().HandleValid)
}

// A commit may be called "top"; it keeps its own row next to the series top.
func TestBoard_CommitNamedTopHasItsOwnRow(t *testing.T) {
	ws := newFakeWS()
	ws.stacks["s1"] = model.Stack{ID: "s1", Series: []model.Series{
		{Name: "A", CommitIDs: []model.CommitID{"top", "c2"}},
		{Name: "B", CommitIDs: []model.CommitID{"c3"}},
	}}
	m := newTestBoard(t, ws)

	targets := 0
	for _, b := range m.boxes {
		if b.stackID == "s1" && b.reg != nil {
			targets++
		}
	}
	assert.Equal(t, 5, targets)

	// Rows in s1: A:top=4, top=5, c2=6, B:top=7, c3=8.
	send(t, m, mouse(tea.MouseActionPress, 3, 5))
	send(t, m, mouse(tea.MouseActionMotion, 3, 6))
	require.True(t, m.ctrl.Session().Active())
	send(t, m, mouse(tea.MouseActionMotion, 4, 6))
	send(t, m, mouse(tea.MouseActionRelease, 4, 6))

	assert.Equal(t, []model.SeriesRecord{
		{Name: "A", CommitIDs: []string{"c2", "top"}},
		{Name: "B", CommitIDs: []string{"c3"}},
	}, ws.stackCalls["s1"])
	assert.Contains(t, m.View(), "moved to A:c2")
}

func TestBoard_LaneDragReordersAndPersists(t *testing.T) {
	ws := newFakeWS()
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 2, 2))
	send(t, m, mouse(tea.MouseActionMotion, 3, 2))
	send(t, m, mouse(tea.MouseActionMotion, 50, 2))
	assert.Equal(t, "s2", m.lanes[0].StackID)

	send(t, m, mouse(tea.MouseActionRelease, 50, 2))
	require.Len(t, ws.laneCalls, 1)
	assert.Equal(t, []string{"s2", "s1"}, ws.laneCalls[0])
	assert.Contains(t, m.View(), "lanes reordered")
}

func TestBoard_EscRestoresLaneOrder(t *testing.T) {
	ws := newFakeWS()
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 2, 2))
	send(t, m, mouse(tea.MouseActionMotion, 50, 2))
	require.Equal(t, "s2", m.lanes[0].StackID)

	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "s1", m.lanes[0].StackID)
	assert.False(t, m.ctrl.Session().Active())
	assert.Empty(t, ws.laneCalls)
	assert.Contains(t, m.View(), "drag cancelled")
}

func TestBoard_FailedPersistShowsErrorAndReloads(t *testing.T) {
	ws := newFakeWS()
	ws.err = errors.New("disk full")
	m := newTestBoard(t, ws)

	send(t, m, mouse(tea.MouseActionPress, 2, 2))
	send(t, m, mouse(tea.MouseActionMotion, 50, 2))
	send(t, m, mouse(tea.MouseActionRelease, 50, 2))

	assert.Equal(t, "s1", m.lanes[0].StackID)
	assert.Contains(t, m.View(), "error: reorder lanes: disk full")
}

func TestBoard_ViewFitsWindow(t *testing.T) {
	m := newTestBoard(t, newFakeWS())
	send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	lines := splitLines(m.View())
	assert.Len(t, lines, 12)
	for _, ln := range lines {
		assert.LessOrEqual(t, lipgloss.Width(ln), 40)
	}
	assert.Contains(t, m.View(), "auth")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
