package tui

import (
	"context"
	"fmt"
	"time"

	"restack-cli/internal/drag"
	"restack-cli/internal/eventloop"
	"restack-cli/internal/model"
	"restack-cli/internal/pointer"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	laneWidth = 28
	laneGap   = 2
	colWidth  = laneWidth + laneGap
	// Rows above the lane strip: header and a blank line.
	laneTop = 2
	// Motion needed after a press before it counts as a drag.
	dragThreshold = 1
)

// Workspace is the persistent side of the board.
type Workspace interface {
	drag.StackOps
	Lanes(ctx context.Context) ([]model.Lane, error)
	Stack(ctx context.Context, id string) (model.Stack, error)
}

type Options struct {
	ActivationDelay  time.Duration
	SuppressAdjacent bool
	Logger           *zap.Logger
}

type press struct {
	b    *box
	x, y int
}

// Board is the Bubble Tea model. It is a pointer model: the drag controller
// keeps a pointer to its lane slice.
type Board struct {
	ctx  context.Context
	ws   Workspace
	log  *zap.Logger
	keys keyMap

	sched *eventloop.Tea
	ctrl  *drag.Controller

	lanes  []model.Lane
	stacks map[string]model.Stack

	boxes map[string]*box
	row   *laneRow
	root  *box

	width, height int
	scroll        int

	pressed *press
	hover   *box
	mouseX  int
	mouseY  int

	preview *preview
	status  string
	err     error
}

func NewBoard(ctx context.Context, ws Workspace, opts Options) *Board {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &Board{
		ctx:    ctx,
		ws:     ws,
		log:    opts.Logger,
		keys:   defaultKeyMap(),
		sched:  eventloop.NewTea(),
		stacks: map[string]model.Stack{},
		boxes:  map[string]*box{},
		width:  80,
		height: 24,
	}
	m.root = &box{id: "board", kind: boxRoot}
	m.row = &laneRow{b: box{id: "lanes", kind: boxRoot}, scroll: &m.scroll, lanes: m.laneBoxes}
	m.ctrl = drag.NewController(ws, m, drag.Options{
		Scheduler:        m.sched,
		ActivationDelay:  opts.ActivationDelay,
		SuppressAdjacent: opts.SuppressAdjacent,
		Root:             m.root,
		Preview:          m,
		Logger:           opts.Logger.Named("drag"),
	})
	return m
}

// Stack serves the drag controller from the board's in-memory copy.
func (m *Board) Stack(id string) (model.Stack, bool) {
	st, ok := m.stacks[id]
	return st, ok
}

type loadedMsg struct {
	lanes  []model.Lane
	stacks map[string]model.Stack
	err    error
}

func (m *Board) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Board) loadCmd() tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		lanes, err := ws.Lanes(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		stacks := make(map[string]model.Stack, len(lanes))
		for _, l := range lanes {
			st, err := ws.Stack(ctx, l.StackID)
			if err != nil {
				return loadedMsg{err: fmt.Errorf("load stack %s: %w", l.StackID, err)}
			}
			stacks[l.StackID] = st
		}
		return loadedMsg{lanes: lanes, stacks: stacks}
	}
}

// relayout recomputes every box from the current lanes and stacks. Boxes
// are reused by key; drop targets that disappeared are unregistered.
func (m *Board) relayout() {
	for _, b := range m.boxes {
		b.seen = false
	}
	stripH := m.height - laneTop - 1
	if stripH < 0 {
		stripH = 0
	}
	m.root.rect = pointer.Rect{W: m.width, H: m.height}
	m.row.b.rect = pointer.Rect{X: 0, Y: laneTop, W: m.width, H: stripH}

	for i, l := range m.lanes {
		x := i*colWidth - m.scroll
		lb := m.box("lane/"+l.StackID, boxLane, l.StackID)
		lb.rect = pointer.Rect{X: x, Y: laneTop, W: colWidth, H: 1}

		st := m.stacks[l.StackID]
		y := laneTop + 2
		for _, s := range st.Series {
			m.placeTarget(l.StackID, model.DropTarget{SeriesName: s.Name, Anchor: model.AnchorTop}, boxSeries, x, y)
			y++
			for _, c := range s.CommitIDs {
				m.placeTarget(l.StackID, model.DropTarget{SeriesName: s.Name, Anchor: model.After(c)}, boxCommit, x, y)
				y++
			}
		}
	}

	for k, b := range m.boxes {
		if b.seen {
			continue
		}
		if b.reg != nil {
			b.reg.Unregister()
		}
		if m.hover == b {
			m.hover = nil
		}
		delete(m.boxes, k)
	}
}

func (m *Board) box(key string, kind boxKind, stackID string) *box {
	b, ok := m.boxes[key]
	if !ok {
		b = &box{id: key, kind: kind, stackID: stackID}
		m.boxes[key] = b
	}
	b.seen = true
	return b
}

func (m *Board) placeTarget(stackID string, t model.DropTarget, kind boxKind, x, y int) {
	b := m.box(targetKey(stackID, t), kind, stackID)
	b.target = t
	b.rect = pointer.Rect{X: x, Y: y, W: laneWidth, H: 1}
	if b.reg == nil {
		b.reg = m.ctrl.RegisterTarget(b, stackID, t, drag.Hooks{
			OnHoverStart: func() { m.status = "drop → " + t.String() },
			OnHoverEnd:   func() { m.status = "" },
		})
	}
}

// laneBoxes returns the lane title boxes in lane order.
func (m *Board) laneBoxes() []pointer.Element {
	out := make([]pointer.Element, 0, len(m.lanes))
	for _, l := range m.lanes {
		if b, ok := m.boxes["lane/"+l.StackID]; ok {
			out = append(out, b)
		}
	}
	return out
}

// hit returns the box under (x, y) that satisfies want.
func (m *Board) hit(x, y int, want func(*box) bool) *box {
	for _, b := range m.boxes {
		if b.rect.Contains(x, y) && want(b) {
			return b
		}
	}
	return nil
}

func (m *Board) contentWidth() int { return len(m.lanes) * colWidth }

func (m *Board) clampScroll() {
	maxScroll := m.contentWidth() - m.width
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
