// Package dropzone binds drop-target behaviour to rendered elements.
//
// A zone moves through three phases during a drag: dormant (no listeners),
// activated (listeners bound, activation callback fired) and hovered. The
// activation is deferred by a short delay so the element the drag started
// from does not immediately receive enter events.
package dropzone

import (
	"time"

	"restack-cli/internal/eventloop"
	"restack-cli/internal/pointer"

	"go.uber.org/zap"
)

// DefaultActivationDelay is used when Options.Delay is zero.
const DefaultActivationDelay = 10 * time.Millisecond

// Config is the behaviour of a drop target. Every callback is optional;
// a nil Accepts rejects every payload.
type Config[P any] struct {
	Accepts           func(P) bool
	OnDrop            func(P)
	OnHoverStart      func()
	OnHoverEnd        func()
	OnActivationStart func()
	OnActivationEnd   func()
}

// Options are shared by all zones of a registry.
type Options struct {
	Scheduler eventloop.Scheduler
	Delay     time.Duration
	// Root receives listeners of zones whose element is missing.
	Root   pointer.Element
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Delay <= 0 {
		o.Delay = DefaultActivationDelay
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Zone is one drop target.
type Zone[P any] struct {
	opts Options
	el   pointer.Element
	cfg  Config[P]

	payload    P
	registered bool
	activated  bool
	hovered    bool

	bound   pointer.Element
	release []func()
	timer   eventloop.Timer
}

// NewZone returns a dormant zone. Most callers use Registry.Register instead.
func NewZone[P any](el pointer.Element, cfg Config[P], opts Options) *Zone[P] {
	return &Zone[P]{opts: opts.withDefaults(), el: el, cfg: cfg}
}

func (z *Zone[P]) Element() pointer.Element { return z.el }
func (z *Zone[P]) Registered() bool         { return z.registered }
func (z *Zone[P]) Activated() bool          { return z.activated }
func (z *Zone[P]) Hovered() bool            { return z.hovered }

// Activate evaluates Accepts once and, when accepted, binds listeners and
// schedules activation. A zone that is already registered is deactivated
// first so listeners never stack.
func (z *Zone[P]) Activate(payload P) bool {
	if z.registered {
		z.Deactivate()
	}
	if z.cfg.Accepts == nil || !z.cfg.Accepts(payload) {
		return false
	}
	z.payload = payload
	z.registered = true
	z.bind()
	z.timer = z.opts.Scheduler.After(z.opts.Delay, z.onActivate)
	return true
}

func (z *Zone[P]) onActivate() {
	z.timer = nil
	if !z.registered || z.activated {
		return
	}
	z.activated = true
	if z.cfg.OnActivationStart != nil {
		z.cfg.OnActivationStart()
	}
}

// Reactivate swaps the configuration and element mid-drag. The activated and
// hovered flags survive; listeners move to the new element.
func (z *Zone[P]) Reactivate(el pointer.Element, cfg Config[P]) {
	z.cfg = cfg
	if el == z.el && z.bound != nil {
		return
	}
	z.el = el
	if !z.registered {
		return
	}
	z.unbind()
	z.bind()
}

// Deactivate releases listeners, cancels a pending activation and resets
// the zone. End callbacks fire at most once, only for phases that started.
// Calling it on a dormant zone does nothing.
func (z *Zone[P]) Deactivate() {
	if z.timer != nil {
		z.timer.Stop()
		z.timer = nil
	}
	z.unbind()

	wasHovered, wasActivated := z.hovered, z.activated
	z.registered, z.activated, z.hovered = false, false, false
	var zero P
	z.payload = zero

	if wasHovered && z.cfg.OnHoverEnd != nil {
		z.cfg.OnHoverEnd()
	}
	if wasActivated && z.cfg.OnActivationEnd != nil {
		z.cfg.OnActivationEnd()
	}
}

func (z *Zone[P]) bind() {
	target := z.el
	if target == nil {
		target = z.opts.Root
		if target == nil {
			z.opts.Logger.Error("dropzone has no element and no root container; listeners not bound")
			return
		}
		z.opts.Logger.Warn("dropzone element missing, falling back to root container",
			zap.String("root", target.ID()))
	}
	z.bound = target
	z.release = append(z.release,
		target.Listen(pointer.DragEnter, func(pointer.Event) { z.enter() }),
		target.Listen(pointer.DragLeave, func(pointer.Event) { z.leave() }),
		target.Listen(pointer.Drop, func(pointer.Event) { z.drop() }),
	)
}

func (z *Zone[P]) unbind() {
	for _, rel := range z.release {
		if rel != nil {
			rel()
		}
	}
	z.release = nil
	z.bound = nil
}

func (z *Zone[P]) enter() {
	if !z.activated || z.hovered {
		return
	}
	z.hovered = true
	if z.cfg.OnHoverStart != nil {
		z.cfg.OnHoverStart()
	}
}

func (z *Zone[P]) leave() {
	if !z.hovered {
		return
	}
	z.hovered = false
	if z.cfg.OnHoverEnd != nil {
		z.cfg.OnHoverEnd()
	}
}

func (z *Zone[P]) drop() {
	if !z.activated {
		return
	}
	if z.cfg.OnDrop != nil {
		z.cfg.OnDrop(z.payload)
	}
}
