package drawer

// Registry coordinates several panels so that at most one per side is open.
type Registry struct {
	ids    []string
	panels map[string]*Panel
}

func NewRegistry() *Registry {
	return &Registry{panels: make(map[string]*Panel)}
}

// Register adds a panel under id. Registering an existing id is a no-op.
func (r *Registry) Register(id string, p *Panel) {
	if _, ok := r.panels[id]; ok {
		return
	}
	r.ids = append(r.ids, id)
	r.panels[id] = p
}

// Unregister closes and forgets a panel.
func (r *Registry) Unregister(id string) {
	p, ok := r.panels[id]
	if !ok {
		return
	}
	p.Close()
	delete(r.panels, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
}

// Get returns the panel registered under id.
func (r *Registry) Get(id string) (*Panel, bool) {
	p, ok := r.panels[id]
	return p, ok
}

// Open opens a panel and closes any other open panel on the same side.
func (r *Registry) Open(id string) bool {
	p, ok := r.panels[id]
	if !ok {
		return false
	}
	for _, other := range r.ids {
		if other == id {
			continue
		}
		if q := r.panels[other]; q.Side() == p.Side() {
			q.Close()
		}
	}
	p.Open()
	return true
}

// Close closes one panel without firing its callbacks.
func (r *Registry) Close(id string) {
	if p, ok := r.panels[id]; ok {
		p.Close()
	}
}

// CloseSide closes every panel anchored to side.
func (r *Registry) CloseSide(side Side) {
	for _, id := range r.ids {
		if p := r.panels[id]; p.Side() == side {
			p.Close()
		}
	}
}

// OpenOn returns the id of the open panel on side.
func (r *Registry) OpenOn(side Side) (string, bool) {
	for _, id := range r.ids {
		if p := r.panels[id]; p.Side() == side && p.IsOpen() {
			return id, true
		}
	}
	return "", false
}

// Each visits panels in registration order.
func (r *Registry) Each(fn func(id string, p *Panel)) {
	for _, id := range r.ids {
		fn(id, r.panels[id])
	}
}
