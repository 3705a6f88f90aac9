package dropzone

import (
	"testing"
	"time"

	"restack-cli/internal/eventloop"
	"restack-cli/internal/pointer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeEl struct {
	id string
	ls pointer.Listeners
}

func (e *fakeEl) ID() string                                        { return e.id }
func (e *fakeEl) Rect() pointer.Rect                                { return pointer.Rect{} }
func (e *fakeEl) send(k pointer.Kind)                               { e.ls.Dispatch(pointer.Event{Kind: k}) }
func (e *fakeEl) Listen(k pointer.Kind, fn pointer.Listener) func() { return e.ls.Add(k, fn) }

type recorder struct {
	calls []string
}

func (r *recorder) config(accept bool) Config[string] {
	return Config[string]{
		Accepts:           func(string) bool { return accept },
		OnDrop:            func(p string) { r.calls = append(r.calls, "drop:"+p) },
		OnHoverStart:      func() { r.calls = append(r.calls, "hover-start") },
		OnHoverEnd:        func() { r.calls = append(r.calls, "hover-end") },
		OnActivationStart: func() { r.calls = append(r.calls, "activation-start") },
		OnActivationEnd:   func() { r.calls = append(r.calls, "activation-end") },
	}
}

func newTestZone(el pointer.Element, cfg Config[string]) (*Zone[string], *eventloop.Manual) {
	sched := eventloop.NewManual()
	return NewZone(el, cfg, Options{Scheduler: sched}), sched
}

func TestZone_FullLifecycle(t *testing.T) {
	el := &fakeEl{id: "commit-c1"}
	rec := &recorder{}
	z, sched := newTestZone(el, rec.config(true))

	require.True(t, z.Activate("c9"))
	assert.Equal(t, 3, el.ls.Count())

	// Enter before the activation delay is ignored.
	el.send(pointer.DragEnter)
	assert.Empty(t, rec.calls)

	sched.Advance(DefaultActivationDelay)
	el.send(pointer.DragEnter)
	el.send(pointer.DragEnter)
	el.send(pointer.Drop)
	z.Deactivate()
	z.Deactivate()

	assert.Equal(t, []string{"activation-start", "hover-start", "drop:c9", "hover-end", "activation-end"}, rec.calls)
	assert.Equal(t, 0, el.ls.Count(), "no dangling listeners")
}

func TestZone_DeactivateBeforeDelaySuppressesActivation(t *testing.T) {
	el := &fakeEl{id: "x"}
	rec := &recorder{}
	z, sched := newTestZone(el, rec.config(true))

	require.True(t, z.Activate("p"))
	z.Deactivate()
	sched.Advance(time.Second)

	assert.Empty(t, rec.calls)
	assert.False(t, z.Activated())
	assert.Equal(t, 0, el.ls.Count())
}

func TestZone_RejectedPayloadBindsNothing(t *testing.T) {
	el := &fakeEl{id: "x"}
	rec := &recorder{}
	z, sched := newTestZone(el, rec.config(false))

	assert.False(t, z.Activate("p"))
	sched.Advance(time.Second)
	assert.Equal(t, 0, el.ls.Count())
	assert.False(t, z.Registered())
	z.Deactivate()
	assert.Empty(t, rec.calls)
}

func TestZone_ReentrantActivateDoesNotStackListeners(t *testing.T) {
	el := &fakeEl{id: "x"}
	rec := &recorder{}
	z, sched := newTestZone(el, rec.config(true))

	z.Activate("a")
	sched.Advance(DefaultActivationDelay)
	z.Activate("b")
	assert.Equal(t, 3, el.ls.Count())
	sched.Advance(DefaultActivationDelay)

	el.send(pointer.Drop)
	assert.Equal(t, []string{"activation-start", "activation-end", "activation-start", "drop:b"}, rec.calls)
}

func TestZone_ReactivateKeepsFlagsAndMovesListeners(t *testing.T) {
	oldEl := &fakeEl{id: "old"}
	newEl := &fakeEl{id: "new"}
	rec := &recorder{}
	z, sched := newTestZone(oldEl, rec.config(true))

	z.Activate("p")
	sched.Advance(DefaultActivationDelay)
	oldEl.send(pointer.DragEnter)
	require.True(t, z.Hovered())

	rec2 := &recorder{}
	z.Reactivate(newEl, rec2.config(true))
	assert.True(t, z.Activated())
	assert.True(t, z.Hovered())
	assert.Equal(t, 0, oldEl.ls.Count())
	assert.Equal(t, 3, newEl.ls.Count())

	newEl.send(pointer.Drop)
	z.Deactivate()
	assert.Equal(t, []string{"drop:p", "hover-end", "activation-end"}, rec2.calls)
	assert.Equal(t, 0, newEl.ls.Count())
}

func TestZone_MissingElementFallsBackToRoot(t *testing.T) {
	root := &fakeEl{id: "board"}
	core, logs := observer.New(zap.WarnLevel)
	rec := &recorder{}
	sched := eventloop.NewManual()
	z := NewZone[string](nil, rec.config(true), Options{Scheduler: sched, Root: root, Logger: zap.New(core)})

	require.True(t, z.Activate("p"))
	assert.Equal(t, 3, root.ls.Count())
	assert.Equal(t, 1, logs.FilterMessageSnippet("falling back to root").Len())

	z.Deactivate()
	assert.Equal(t, 0, root.ls.Count())
}

func TestZone_MissingElementAndRootDoesNotPanic(t *testing.T) {
	rec := &recorder{}
	z, sched := newTestZone(nil, rec.config(true))
	require.True(t, z.Activate("p"))
	sched.Advance(DefaultActivationDelay)
	assert.NotPanics(t, z.Deactivate)
	assert.Equal(t, []string{"activation-start", "activation-end"}, rec.calls)
}
