package dropzone

import "restack-cli/internal/pointer"

// Registry holds the drop targets of one board. It does not arbitrate
// between overlapping zones; Hovered returns the first hovered one in
// registration order.
type Registry[P any] struct {
	opts  Options
	zones []*Zone[P]
}

func NewRegistry[P any](opts Options) *Registry[P] {
	return &Registry[P]{opts: opts.withDefaults()}
}

// Registration is returned by Register. Unregister is idempotent.
type Registration[P any] struct {
	r *Registry[P]
	z *Zone[P]
}

// Register adds a dormant zone for el.
func (r *Registry[P]) Register(el pointer.Element, cfg Config[P]) *Registration[P] {
	z := NewZone(el, cfg, r.opts)
	r.zones = append(r.zones, z)
	return &Registration[P]{r: r, z: z}
}

func (h *Registration[P]) Zone() *Zone[P] { return h.z }

// Update re-targets the zone, e.g. after the board re-rendered.
func (h *Registration[P]) Update(el pointer.Element, cfg Config[P]) {
	if h.z != nil {
		h.z.Reactivate(el, cfg)
	}
}

func (h *Registration[P]) Unregister() {
	if h.r == nil {
		return
	}
	h.z.Deactivate()
	zones := h.r.zones[:0]
	for _, z := range h.r.zones {
		if z != h.z {
			zones = append(zones, z)
		}
	}
	h.r.zones = zones
	h.r = nil
}

// Activate activates every zone accepting payload and returns how many did.
func (r *Registry[P]) Activate(payload P) int {
	n := 0
	for _, z := range r.zones {
		if z.Activate(payload) {
			n++
		}
	}
	return n
}

// Deactivate deactivates every zone. Safe to call at any time.
func (r *Registry[P]) Deactivate() {
	for _, z := range r.zones {
		z.Deactivate()
	}
}

// Hovered returns the first hovered zone.
func (r *Registry[P]) Hovered() (*Zone[P], bool) {
	for _, z := range r.zones {
		if z.Hovered() {
			return z, true
		}
	}
	return nil, false
}

func (r *Registry[P]) Len() int { return len(r.zones) }
