// Package drag composes the drop zones, the lane tracker and the ordering
// functions into one drag lifecycle with a single owner.
package drag

import (
	"context"
	"fmt"
	"time"

	"restack-cli/internal/dropzone"
	"restack-cli/internal/eventloop"
	"restack-cli/internal/lanes"
	"restack-cli/internal/model"
	"restack-cli/internal/order"
	"restack-cli/internal/pointer"
	"restack-cli/internal/session"

	"go.uber.org/zap"
)

// StackOps persists finished reorders. It is called at most once per drag,
// after the drag has been torn down.
type StackOps interface {
	ReorderStack(ctx context.Context, stackID string, order []model.SeriesRecord) error
	ReorderLanes(ctx context.Context, stackIDs []string) error
}

// StackSource returns the current state of a stack.
type StackSource interface {
	Stack(id string) (model.Stack, bool)
}

type Options struct {
	Scheduler       eventloop.Scheduler
	ActivationDelay time.Duration
	// SuppressAdjacent rejects drops onto the dragged commit's own slot or
	// the slot directly above it.
	SuppressAdjacent bool
	Root             pointer.Element
	Preview          pointer.PreviewFactory
	Logger           *zap.Logger
}

// Controller owns the drag session.
type Controller struct {
	s      *session.Session
	ops    StackOps
	stacks StackSource
	opts   Options
	log    *zap.Logger

	zones *dropzone.Registry[model.DragPayload]
	lanes *lanes.Tracker[model.Lane]

	laneOrder *[]model.Lane
	source    pointer.Element
	dropped   *model.DropTarget
}

func NewController(ops StackOps, stacks StackSource, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := session.New()
	return &Controller{
		s:      s,
		ops:    ops,
		stacks: stacks,
		opts:   opts,
		log:    opts.Logger,
		zones: dropzone.NewRegistry[model.DragPayload](dropzone.Options{
			Scheduler: opts.Scheduler,
			Delay:     opts.ActivationDelay,
			Root:      opts.Root,
			Logger:    opts.Logger.Named("dropzone"),
		}),
		lanes: lanes.New(s, func(l model.Lane) string { return l.StackID }, opts.Logger.Named("lanes")),
	}
}

// Session exposes the current drag state for rendering. Callers must not
// mutate it.
func (c *Controller) Session() *session.Session { return c.s }

// Hooks observe hover changes on a commit target.
type Hooks struct {
	OnHoverStart func()
	OnHoverEnd   func()
}

// RegisterTarget registers el as the drop target for target inside stackID.
// Only payloads from the same stack are accepted.
func (c *Controller) RegisterTarget(el pointer.Element, stackID string, target model.DropTarget, h Hooks) *dropzone.Registration[model.DragPayload] {
	return c.zones.Register(el, c.targetConfig(stackID, target, h))
}

// RetargetTarget points an existing registration at a re-rendered element.
func (c *Controller) RetargetTarget(reg *dropzone.Registration[model.DragPayload], el pointer.Element, stackID string, target model.DropTarget, h Hooks) {
	reg.Update(el, c.targetConfig(stackID, target, h))
}

func (c *Controller) targetConfig(stackID string, target model.DropTarget, h Hooks) dropzone.Config[model.DragPayload] {
	return dropzone.Config[model.DragPayload]{
		Accepts: func(p model.DragPayload) bool { return p.SourceStackID == stackID },
		OnDrop: func(model.DragPayload) {
			t := target
			c.dropped = &t
		},
		OnHoverStart: h.OnHoverStart,
		OnHoverEnd:   h.OnHoverEnd,
	}
}

// Hovered returns the target of the first hovered zone.
func (c *Controller) Hovered() (pointer.Element, bool) {
	z, ok := c.zones.Hovered()
	if !ok {
		return nil, false
	}
	return z.Element(), true
}

// PointerDown must precede every Begin call.
func (c *Controller) PointerDown(el pointer.Element) { c.s.PointerDown(el) }

// BeginCommitDrag starts dragging a commit from source.
func (c *Controller) BeginCommitDrag(source pointer.Element, p model.DragPayload) bool {
	if !c.s.Begin(session.KindCommit) {
		return false
	}
	c.s.Payload = p
	c.source = source
	c.dropped = nil
	if d, ok := source.(pointer.Dimmable); ok {
		d.SetDimmed(true)
	}
	if c.opts.Preview != nil {
		c.s.Preview = c.opts.Preview.CreateDragPreview(string(p.CommitID))
	}
	n := c.zones.Activate(p)
	c.log.Debug("commit drag started",
		zap.String("session", c.s.ID), zap.String("stack", p.SourceStackID),
		zap.String("commit", string(p.CommitID)), zap.Int("zones", n))
	return true
}

// BeginLaneDrag starts dragging the lane of stackID. lo is reordered in
// place while the drag moves.
func (c *Controller) BeginLaneDrag(el pointer.Element, stackID string, lo *[]model.Lane) bool {
	if !c.lanes.DragStart(stackID, lo, el) {
		return false
	}
	c.laneOrder = lo
	if c.opts.Preview != nil {
		c.s.Preview = c.opts.Preview.CreateDragPreview(stackID)
	}
	return true
}

// LaneOver feeds a pointer move over the lane container.
func (c *Controller) LaneOver(x int, container pointer.Container) bool {
	return c.lanes.DragOver(x, container)
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCancelled
	// OutcomeRejected: the drop landed next to the commit's own slot.
	OutcomeRejected
	// OutcomeNoop: the target could not be honoured or changed nothing.
	OutcomeNoop
	OutcomeMoved
	OutcomeLanesReordered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNoop:
		return "no-op"
	case OutcomeMoved:
		return "moved"
	case OutcomeLanesReordered:
		return "lanes-reordered"
	default:
		return "none"
	}
}

// Result describes how a drag ended.
type Result struct {
	Outcome Outcome
	StackID string
	Stack   model.Stack
	Target  model.DropTarget
	Lanes   []string
}

// Finish ends the drag after the pointer was released. Drops recorded by a
// zone are resolved and persisted; anything else is a cancel.
func (c *Controller) Finish(ctx context.Context) (Result, error) {
	switch c.s.Kind {
	case session.KindCommit:
		return c.finishCommit(ctx)
	case session.KindLane:
		return c.finishLane(ctx)
	default:
		return Result{}, nil
	}
}

func (c *Controller) finishCommit(ctx context.Context) (Result, error) {
	p := c.s.Payload
	dropped := c.dropped
	c.teardown()

	if dropped == nil {
		return Result{Outcome: OutcomeCancelled, StackID: p.SourceStackID}, nil
	}
	res := Result{StackID: p.SourceStackID, Target: *dropped}
	st, ok := c.stacks.Stack(p.SourceStackID)
	if !ok {
		return res, fmt.Errorf("drop into unknown stack %s", p.SourceStackID)
	}
	res, err := Apply(ctx, c.ops, st, p, *dropped, c.opts.SuppressAdjacent)
	if err == nil && res.Outcome == OutcomeMoved {
		c.log.Info("commit moved",
			zap.String("stack", st.ID), zap.String("commit", string(p.CommitID)),
			zap.String("target", dropped.String()))
	}
	return res, err
}

// Apply moves p.CommitID to t inside st and persists the result through ops.
// With suppress set, drops onto the commit's own slot or the slot directly
// above it are rejected. ops is called only when the order changes.
func Apply(ctx context.Context, ops StackOps, st model.Stack, p model.DragPayload, t model.DropTarget, suppress bool) (Result, error) {
	res := Result{StackID: st.ID, Stack: st, Target: t}
	if suppress && order.IsAdjacentNoop(st, p.CommitID, t) {
		res.Outcome = OutcomeRejected
		return res, nil
	}
	next, ok, err := order.ResolveMove(st, p, t)
	if err != nil {
		return res, err
	}
	if !ok || order.Equal(st, next) {
		res.Outcome = OutcomeNoop
		return res, nil
	}
	if err := ops.ReorderStack(ctx, st.ID, model.Records(next)); err != nil {
		return res, fmt.Errorf("reorder stack %s: %w", st.ID, err)
	}
	res.Outcome = OutcomeMoved
	res.Stack = next
	return res, nil
}

func (c *Controller) finishLane(ctx context.Context) (Result, error) {
	changed := c.lanes.Drop()
	lo := c.laneOrder
	c.laneOrder = nil
	if !changed || lo == nil {
		return Result{Outcome: OutcomeNoop}, nil
	}
	ids := make([]string, 0, len(*lo))
	for _, l := range *lo {
		ids = append(ids, l.StackID)
	}
	if err := c.ops.ReorderLanes(ctx, ids); err != nil {
		return Result{Lanes: ids}, fmt.Errorf("reorder lanes: %w", err)
	}
	c.log.Info("lanes reordered", zap.Strings("order", ids))
	return Result{Outcome: OutcomeLanesReordered, Lanes: ids}, nil
}

// Cancel aborts the drag in flight, restoring lanes and visual state. It
// never calls StackOps and is safe to call at any time.
func (c *Controller) Cancel() {
	switch c.s.Kind {
	case session.KindLane:
		c.lanes.Cancel()
		c.laneOrder = nil
	case session.KindCommit:
		c.teardown()
	}
}

func (c *Controller) teardown() {
	c.zones.Deactivate()
	if d, ok := c.source.(pointer.Dimmable); ok {
		d.SetDimmed(false)
	}
	c.source = nil
	c.dropped = nil
	c.s.End()
}
