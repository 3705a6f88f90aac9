package pointer

import "sort"

// Listeners is a reusable listener table for Element implementations. Like
// the rest of the engine it is only touched from the UI loop.
//
// The zero value is ready to use.
type Listeners struct {
	next int
	fns  map[Kind]map[int]Listener
}

// Add registers fn for k and returns its release func.
func (l *Listeners) Add(k Kind, fn Listener) func() {
	if l.fns == nil {
		l.fns = map[Kind]map[int]Listener{}
	}
	if l.fns[k] == nil {
		l.fns[k] = map[int]Listener{}
	}
	l.next++
	id := l.next
	l.fns[k][id] = fn
	return func() { delete(l.fns[k], id) }
}

// Count returns the number of registered listeners across all kinds.
func (l *Listeners) Count() int {
	n := 0
	for _, m := range l.fns {
		n += len(m)
	}
	return n
}

// Dispatch calls every listener registered for ev.Kind in registration order.
// Listeners released by an earlier listener during the same dispatch are
// skipped.
func (l *Listeners) Dispatch(ev Event) {
	m := l.fns[ev.Kind]
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := l.fns[ev.Kind][id]; ok {
			fn(ev)
		}
	}
}
