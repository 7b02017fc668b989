package drawer

import (
	"go.uber.org/zap"
)

// Host supplies the layout facts the pipeline reads but does not own.
type Host interface {
	// ViewportHeight is the current viewport extent in px.
	ViewportHeight() float64
	// PanelWidth is the rendered width of a horizontal panel in px.
	PanelWidth() float64
	// ScrollBody reports the designated scrollable region, if any.
	ScrollBody() (ScrollMetrics, bool)
}

// Options configure a Panel.
type Options struct {
	Side         Side
	Size         SizeClass
	ExpandMode   bool // vertical panels may grow to the full extent
	MinimizeMode bool // vertical panels may collapse to the header
	SwipeToClose bool // gestures are handled at all
	Dismissible  bool // keyboard and backdrop may close the panel
	Tuning       Tuning
}

// DefaultOptions returns a bottom sheet of size m with gestures enabled.
func DefaultOptions() Options {
	return Options{
		Side:         SideBottom,
		Size:         SizeM,
		SwipeToClose: true,
		Dismissible:  true,
		Tuning:       DefaultTuning(),
	}
}

// Option customizes a Panel at construction.
type Option func(*Panel)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.log = l
		}
	}
}

// WithCapturer sets the input capture primitive.
func WithCapturer(c Capturer) Option {
	return func(p *Panel) {
		if c != nil {
			p.capturer = c
		}
	}
}

func WithOnClose(fn func()) Option    { return func(p *Panel) { p.onClose = fn } }
func WithOnMinimize(fn func()) Option { return func(p *Panel) { p.onMinimize = fn } }
func WithOnRestore(fn func()) Option  { return func(p *Panel) { p.onRestore = fn } }

// Panel is one drawer instance: it owns the live session, the drag output
// and the mode. All methods must be called from the goroutine that delivers
// input; none of them block.
type Panel struct {
	opts     Options
	host     Host
	capturer Capturer
	log      *zap.Logger
	adapter  Adapter

	onClose    func()
	onMinimize func()
	onRestore  func()

	open    bool
	mode    Mode
	session *Session
	drag    DragState
	capture *captureScope
}

// NewPanel returns a closed panel.
func NewPanel(host Host, opts Options, options ...Option) *Panel {
	p := &Panel{
		opts:     opts,
		host:     host,
		capturer: nopCapturer{},
		log:      zap.NewNop(),
		session:  newSession(opts.Tuning.VelocityWindow),
		drag:     IdleDragState(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

func (p *Panel) Side() Side            { return p.opts.Side }
func (p *Panel) Options() Options      { return p.opts }
func (p *Panel) Mode() Mode            { return p.mode }
func (p *Panel) DragState() DragState  { return p.drag }
func (p *Panel) IsOpen() bool          { return p.open }
func (p *Panel) Committed() bool       { return p.session.Committed }
func (p *Panel) SessionLive() bool     { return p.session.Live() }
func (p *Panel) Geometry() Geometry    { return ComputeGeometry(p.host.ViewportHeight(), p.opts.Size, p.opts.Tuning) }
func (p *Panel) vertical() bool        { return p.opts.Side.Vertical() }
func (p *Panel) handlesGestures() bool { return p.open && p.opts.SwipeToClose }

// Configure swaps options. Any live gesture is abandoned.
func (p *Panel) Configure(opts Options) {
	p.reset()
	if opts.Tuning.VelocityWindow != p.opts.Tuning.VelocityWindow {
		p.session = newSession(opts.Tuning.VelocityWindow)
	}
	switch {
	case !opts.Side.Vertical(),
		p.mode == ModeMinimized && !opts.MinimizeMode,
		p.mode == ModeExpanded && !opts.ExpandMode:
		p.mode = ModeNormal
	}
	p.opts = opts
}

// Open shows a closed panel in ModeNormal.
func (p *Panel) Open() {
	if p.open {
		return
	}
	p.reset()
	p.open = true
	p.mode = ModeNormal
	p.log.Debug("panel opened", zap.Stringer("side", p.opts.Side))
}

// Close hides the panel without firing OnClose; it is the owner's own
// decision, not the user's.
func (p *Panel) Close() {
	if !p.open {
		return
	}
	p.reset()
	p.open = false
}

// HandlePointer feeds a raw pointer event.
func (p *Panel) HandlePointer(e PointerEvent) {
	if ev, ok := p.adapter.Pointer(e); ok {
		p.Handle(ev)
	}
}

// HandleTouch feeds a raw touch event.
func (p *Panel) HandleTouch(e TouchEvent) {
	if ev, ok := p.adapter.Touch(e); ok {
		p.Handle(ev)
	}
}

// Handle dispatches a canonical event.
func (p *Panel) Handle(e Event) {
	switch e.Kind {
	case EventDown:
		p.OnDown(e)
	case EventMove:
		p.OnMove(e)
	case EventUp:
		p.OnUp(e)
	case EventCancel:
		p.OnCancel()
	}
}

// OnDown starts a session, abandoning any previous one.
func (p *Panel) OnDown(e Event) {
	p.reset()
	if !p.handlesGestures() {
		return
	}
	p.session.begin(e, p.vertical())
}

// OnMove classifies an uncommitted session or updates a committed one.
func (p *Panel) OnMove(e Event) {
	if !p.handlesGestures() || !p.session.Live() {
		return
	}
	s := p.session
	s.sample(e)
	primary, cross := s.Displacement(e.X, e.Y)

	if !s.Committed {
		body, hasBody := p.host.ScrollBody()
		c := Classify(ClassifyInput{
			Side:        p.opts.Side,
			Mode:        p.mode,
			ExpandMode:  p.opts.ExpandMode && p.vertical(),
			Primary:     primary,
			Cross:       cross,
			Interactive: s.TargetInteractive,
			InBody:      s.StartedInBody,
			Ignored:     s.Ignored,
			Body:        body,
			HasBody:     hasBody,
		}, p.opts.Tuning)

		switch c.Verdict {
		case VerdictWait:
			return
		case VerdictDecline:
			p.drag = IdleDragState()
			return
		case VerdictPreview:
			p.drag = previewState(c.Scale)
			return
		}
		s.Committed = true
		p.capture = acquireCapture(p.capturer, s.PointerID, p.log)
		p.log.Debug("drag committed",
			zap.Stringer("side", p.opts.Side),
			zap.Stringer("mode", p.mode),
			zap.Float64("delta", primary),
		)
	}

	p.drag = ComputeDrag(p.dragInput(primary, s.velocity.Last()), p.opts.Tuning)
}

func (p *Panel) dragInput(delta, velocity float64) DragInput {
	in := DragInput{
		Side:       p.opts.Side,
		Mode:       p.mode,
		PanelWidth: p.host.PanelWidth(),
		Delta:      delta,
		Velocity:   velocity,
	}
	if p.vertical() {
		in.Geometry = p.Geometry()
		in.ExpandMode = p.opts.ExpandMode
		in.MinimizeMode = p.opts.MinimizeMode
	}
	return in
}

// OnUp evaluates a committed session and always returns to idle.
func (p *Panel) OnUp(e Event) {
	s := p.session
	if !s.Live() || !s.Committed {
		p.reset()
		return
	}
	delta, _ := s.Displacement(e.X, e.Y)
	r := Release{
		Side:        p.opts.Side,
		Mode:        p.mode,
		PanelWidth:  p.host.PanelWidth(),
		Delta:       delta,
		AvgVelocity: s.velocity.Average(),
	}
	if p.vertical() {
		r.Geometry = p.Geometry()
		r.ExpandMode = p.opts.ExpandMode
		r.MinimizeMode = p.opts.MinimizeMode
	}
	tr := Resolve(r, p.opts.Tuning)
	p.reset()
	p.apply(tr, r.ClosingDelta())
}

// OnCancel abandons the session without evaluating it.
func (p *Panel) OnCancel() {
	p.reset()
}

// CaptureLost is reported by the host when capture is revoked mid-gesture.
// The scope is still released so the host's capture bookkeeping clears.
func (p *Panel) CaptureLost() {
	p.OnCancel()
}

func (p *Panel) apply(tr Transition, closing float64) {
	if tr.Changed() {
		p.log.Info("panel transition",
			zap.Stringer("side", p.opts.Side),
			zap.Stringer("from", tr.From),
			zap.Stringer("to", tr.To),
			zap.Stringer("notice", tr.Notice),
			zap.Float64("closing_delta", closing),
		)
	}
	p.mode = tr.To
	switch tr.Notice {
	case NoticeClose:
		p.open = false
		notify(p.onClose)
	case NoticeMinimize:
		notify(p.onMinimize)
	case NoticeRestore:
		notify(p.onRestore)
	}
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}

func (p *Panel) reset() {
	p.capture.release(p.log)
	p.capture = nil
	p.session.clear()
	p.drag = IdleDragState()
}

// Dismiss is the keyboard path. It closes a dismissible open panel and fires
// OnClose.
func (p *Panel) Dismiss() bool {
	if !p.open || !p.opts.Dismissible {
		return false
	}
	p.reset()
	p.open = false
	p.log.Info("panel dismissed", zap.Stringer("side", p.opts.Side))
	notify(p.onClose)
	return true
}

// BackdropClick handles a click outside the panel. With minimize enabled a
// vertical panel collapses from normal instead of closing, and ignores the
// click while expanded.
func (p *Panel) BackdropClick() bool {
	if !p.open || !p.opts.Dismissible || p.mode == ModeMinimized {
		return false
	}
	if p.opts.MinimizeMode && p.vertical() {
		if p.mode == ModeExpanded {
			return false
		}
		return p.Minimize()
	}
	return p.Dismiss()
}

// Minimize collapses an open vertical panel to its header.
func (p *Panel) Minimize() bool {
	if !p.open || !p.vertical() || p.mode == ModeMinimized {
		return false
	}
	p.reset()
	p.apply(Transition{From: p.mode, To: ModeMinimized, Notice: NoticeMinimize}, 0)
	return true
}

// PresentedExtent is the size the renderer should give the panel along its
// axis: the live height during a vertical drag, else the mode extent.
func (p *Panel) PresentedExtent() float64 {
	if !p.vertical() {
		return p.host.PanelWidth()
	}
	if p.drag.Dragging && p.drag.HasHeight {
		return p.drag.RealTimeHeight
	}
	return p.Geometry().Extent(p.mode)
}

// BodyScrollEnabled reports whether the body should scroll natively. A
// vertical panel in normal mode with expand enabled gives vertical motion to
// the drag; a minimized panel hides its body.
func (p *Panel) BodyScrollEnabled() bool {
	if !p.vertical() {
		return true
	}
	switch p.mode {
	case ModeMinimized:
		return false
	case ModeNormal:
		return !p.opts.ExpandMode
	}
	return true
}

// ShowsDragIndicator reports whether the grip is drawn.
func (p *Panel) ShowsDragIndicator() bool {
	if p.vertical() {
		return true
	}
	return p.drag.Dragging && p.drag.Progress > 0
}
