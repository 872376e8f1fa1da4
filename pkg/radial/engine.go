package radial

// Engine owns the static membership plus the two inputs that invalidate a
// layout: the viewport size and the secondary-tier toggle. Every change
// recomputes the whole layout.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	membership *Membership
	cfg        Config
	layout     *Layout
	passes     int
}

// NewEngine computes an initial layout for cfg.
func NewEngine(m *Membership, cfg Config) *Engine {
	e := &Engine{membership: m, cfg: cfg}
	e.recompute()
	return e
}

func (e *Engine) recompute() {
	e.layout = ComputeMembership(e.membership, e.cfg)
	e.passes++
}

// Layout returns the current layout.
func (e *Engine) Layout() *Layout { return e.layout }

// Config returns the configuration of the current pass.
func (e *Engine) Config() Config { return e.cfg }

// Passes returns how many layout passes have run.
func (e *Engine) Passes() int { return e.passes }

// ShowSecondary reports whether the secondary tier is currently shown.
func (e *Engine) ShowSecondary() bool { return e.cfg.ShowSecondary }

// Resize recomputes the layout for a new viewport.
func (e *Engine) Resize(width, height float64) *Layout {
	e.cfg.Width = width
	e.cfg.Height = height
	e.recompute()
	return e.layout
}

// SetSecondary shows or hides the secondary tier and recomputes.
func (e *Engine) SetSecondary(show bool) *Layout {
	e.cfg.ShowSecondary = show
	e.recompute()
	return e.layout
}

// ToggleSecondary flips secondary-tier visibility.
func (e *Engine) ToggleSecondary() *Layout {
	return e.SetSecondary(!e.cfg.ShowSecondary)
}
