package drawer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	viewport float64
	width    float64
	body     ScrollMetrics
	hasBody  bool
}

func (h *fakeHost) ViewportHeight() float64           { return h.viewport }
func (h *fakeHost) PanelWidth() float64               { return h.width }
func (h *fakeHost) ScrollBody() (ScrollMetrics, bool) { return h.body, h.hasBody }

type fakeCapturer struct {
	acquired []int
	released []int
	fail     error
}

func (c *fakeCapturer) Acquire(id int) error {
	if c.fail != nil {
		return c.fail
	}
	c.acquired = append(c.acquired, id)
	return nil
}

func (c *fakeCapturer) Release(id int) error {
	c.released = append(c.released, id)
	return nil
}

type calls struct {
	close, minimize, restore int
}

func newTestPanel(host Host, opts Options, c *calls, extra ...Option) *Panel {
	options := append([]Option{
		WithOnClose(func() { c.close++ }),
		WithOnMinimize(func() { c.minimize++ }),
		WithOnRestore(func() { c.restore++ }),
	}, extra...)
	p := NewPanel(host, opts, options...)
	p.Open()
	return p
}

// gesture drives a panel with explicit timestamps.
type gesture struct {
	p    *Panel
	x, y float64
	now  time.Time
}

var epoch = time.Unix(1_700_000_000, 0)

func press(p *Panel, x, y float64, target Target) *gesture {
	g := &gesture{p: p, x: x, y: y, now: epoch}
	p.Handle(Event{Kind: EventDown, X: x, Y: y, PointerID: 7, Target: target, Time: g.now})
	return g
}

func (g *gesture) move(dx, dy float64, after time.Duration) *gesture {
	g.x += dx
	g.y += dy
	g.now = g.now.Add(after)
	g.p.Handle(Event{Kind: EventMove, X: g.x, Y: g.y, PointerID: 7, Time: g.now})
	return g
}

// drag moves in equal steps totalling (dx, dy), one step per interval.
func (g *gesture) drag(dx, dy float64, steps int, interval time.Duration) *gesture {
	for i := 0; i < steps; i++ {
		g.move(dx/float64(steps), dy/float64(steps), interval)
	}
	return g
}

func (g *gesture) release() {
	g.now = g.now.Add(16 * time.Millisecond)
	g.p.Handle(Event{Kind: EventUp, X: g.x, Y: g.y, PointerID: 7, Time: g.now})
}

func requireIdle(t *testing.T, p *Panel) {
	t.Helper()
	require.Equal(t, IdleDragState(), p.DragState())
	require.False(t, p.SessionLive())
	require.False(t, p.Committed())
	require.Zero(t, p.session.Velocity().Len())
}

func horizontal(side Side) Options {
	o := DefaultOptions()
	o.Side = side
	return o
}

func TestLeftDrawerClosesPastThreshold(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	g := press(p, 300, 400, nil)
	g.drag(-200, 0, 20, 100*time.Millisecond)
	require.True(t, p.Committed())
	require.InDelta(t, 200.0/320.0, p.DragState().Progress, 1e-9)
	require.InDelta(t, 200.0, p.DragState().Offset, 1e-9)
	g.release()

	require.Equal(t, 1, c.close)
	require.False(t, p.IsOpen())
	requireIdle(t, p)
}

func TestRightDrawerWrongDirectionStretches(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideRight), &c)

	g := press(p, 500, 400, nil)
	g.drag(-200, 0, 10, 50*time.Millisecond)
	d := p.DragState()
	require.True(t, d.Dragging)
	require.Zero(t, d.Offset)
	require.InDelta(t, 1.05, d.Scale, 1e-9)
	g.release()

	require.Zero(t, c.close)
	require.True(t, p.IsOpen())
	requireIdle(t, p)
}

func TestHorizontalSwipeCloses(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideRight), &c)

	g := press(p, 100, 400, nil)
	g.drag(60, 0, 3, 10*time.Millisecond)
	g.release()

	require.Equal(t, 1, c.close)
}

func TestHorizontalDeadzoneNeverCommits(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	g := press(p, 300, 400, nil)
	for _, dx := range []float64{-2, -2, -2, 1, -2} {
		g.move(dx, 0, 16*time.Millisecond)
		require.False(t, p.Committed())
	}
	require.Equal(t, IdleDragState(), p.DragState())
	g.release()
	require.Zero(t, c.close)
	requireIdle(t, p)
}

func TestInteractiveTargetNeedsLargerDeadzone(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	g := press(p, 300, 400, TargetFlags{IsInteractive: true})
	g.move(-12, 0, 16*time.Millisecond)
	require.False(t, p.Committed())
	g.move(-6, 0, 16*time.Millisecond)
	require.True(t, p.Committed())
}

func TestIgnoredTargetNeverCommits(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	g := press(p, 300, 400, TargetFlags{Ignore: true})
	g.drag(-300, 0, 10, 10*time.Millisecond)
	require.False(t, p.Committed())
	g.release()
	require.Zero(t, c.close)
}

func TestVerticalEqualAxesNeverCommit(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 1000}, DefaultOptions(), &c)

	g := press(p, 200, 500, nil)
	for i := 0; i < 10; i++ {
		g.move(10, 10, 16*time.Millisecond)
		require.False(t, p.Committed())
	}
}

func TestTopDrawerShortDragSnapsBack(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.Side = SideTop
	opts.Size = SizeFullscreen
	p := newTestPanel(&fakeHost{viewport: 400}, opts, &c)
	require.Equal(t, 400.0, p.Geometry().Dock)

	g := press(p, 200, 380, nil)
	g.drag(0, -100, 20, 50*time.Millisecond)
	require.True(t, p.Committed())
	require.InDelta(t, 300.0, p.DragState().RealTimeHeight, 1e-9)
	g.release()

	require.Zero(t, c.close)
	require.Equal(t, ModeNormal, p.Mode())
	require.True(t, p.IsOpen())
	requireIdle(t, p)
}

func TestBottomSheetMinimizeTakesPrecedence(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.MinimizeMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)
	dock := p.Geometry().Dock

	g := press(p, 200, 400, nil)
	g.drag(0, dock*0.2, 13, 50*time.Millisecond)
	g.release()

	require.Equal(t, ModeMinimized, p.Mode())
	require.Equal(t, 1, c.minimize)
	require.Zero(t, c.close)
	require.True(t, p.IsOpen())
	requireIdle(t, p)
}

func TestExpandTakesPrecedenceOverMinimize(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.MinimizeMode = true
	opts.ExpandMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)

	g := press(p, 200, 600, nil)
	g.drag(0, -100, 5, 10*time.Millisecond)
	g.release()

	require.Equal(t, ModeExpanded, p.Mode())
	require.Zero(t, c.minimize)
	require.Zero(t, c.close)
}

func TestMinimizedRestoresAndCloses(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.MinimizeMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)
	require.True(t, p.Minimize())
	require.Equal(t, 1, c.minimize)

	g := press(p, 200, 950, nil)
	g.drag(0, -60, 12, 50*time.Millisecond)
	g.release()
	require.Equal(t, ModeNormal, p.Mode())
	require.Equal(t, 1, c.restore)

	require.True(t, p.Minimize())
	g = press(p, 200, 950, nil)
	g.drag(0, 50, 10, 50*time.Millisecond)
	require.InDelta(t, 50.0, p.DragState().Offset, 1e-9)
	g.release()
	require.Equal(t, 1, c.close)
	require.False(t, p.IsOpen())

	p.Open()
	require.Equal(t, ModeNormal, p.Mode())
}

func TestConfigureDropsDisabledMode(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.MinimizeMode = true
	opts.ExpandMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)

	require.True(t, p.Minimize())
	p.Configure(opts)
	require.Equal(t, ModeMinimized, p.Mode())

	opts.MinimizeMode = false
	p.Configure(opts)
	require.Equal(t, ModeNormal, p.Mode())

	g := press(p, 200, 600, nil)
	g.drag(0, -100, 5, 10*time.Millisecond)
	g.release()
	require.Equal(t, ModeExpanded, p.Mode())

	opts.ExpandMode = false
	p.Configure(opts)
	require.Equal(t, ModeNormal, p.Mode())
	require.True(t, p.IsOpen())
}

func TestTopSheetClosingNeedsBodyBottom(t *testing.T) {
	var c calls
	host := &fakeHost{
		viewport: 1000,
		hasBody:  true,
		body:     ScrollMetrics{Top: 0, Height: 2000, ClientHeight: 400},
	}
	opts := DefaultOptions()
	opts.Side = SideTop
	p := newTestPanel(host, opts, &c)

	g := press(p, 200, 300, TargetFlags{InBody: true})
	g.drag(0, -60, 6, 16*time.Millisecond)
	require.False(t, p.Committed())
	g.release()
	requireIdle(t, p)

	host.body.Top = 1600
	g = press(p, 200, 300, TargetFlags{InBody: true})
	g.drag(0, -60, 6, 16*time.Millisecond)
	require.True(t, p.Committed())
	require.InDelta(t, p.Geometry().Extent(ModeNormal)-60, p.DragState().RealTimeHeight, 1e-9)
}

func TestScrollGatedCommit(t *testing.T) {
	var c calls
	host := &fakeHost{
		viewport: 1000,
		hasBody:  true,
		body:     ScrollMetrics{Top: 50, Height: 2000, ClientHeight: 400},
	}
	p := newTestPanel(host, DefaultOptions(), &c)

	g := press(p, 200, 700, TargetFlags{InBody: true})
	for i := 0; i < 40; i++ {
		g.move(0, -10, 16*time.Millisecond)
		require.False(t, p.Committed())
	}
	g.release()
	requireIdle(t, p)
}

func TestBodyAtTopCommitsClosingDrag(t *testing.T) {
	var c calls
	host := &fakeHost{
		viewport: 1000,
		hasBody:  true,
		body:     ScrollMetrics{Top: 0, Height: 2000, ClientHeight: 400},
	}
	p := newTestPanel(host, DefaultOptions(), &c)

	g := press(p, 200, 500, TargetFlags{InBody: true})
	g.drag(0, 40, 4, 30*time.Millisecond)
	require.True(t, p.Committed())
}

func TestBodyAtBottomPreviewsWithoutCommitting(t *testing.T) {
	var c calls
	host := &fakeHost{
		viewport: 1000,
		hasBody:  true,
		body:     ScrollMetrics{Top: 1600, Height: 2000, ClientHeight: 400},
	}
	p := newTestPanel(host, DefaultOptions(), &c)

	g := press(p, 200, 700, TargetFlags{InBody: true})
	g.drag(0, -250, 10, 16*time.Millisecond)
	require.False(t, p.Committed())
	d := p.DragState()
	require.True(t, d.Dragging)
	require.InDelta(t, 1.03, d.Scale, 1e-9)
	g.release()
	requireIdle(t, p)
}

func TestCancelFiresNothing(t *testing.T) {
	var c calls
	capt := &fakeCapturer{}
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c, WithCapturer(capt))

	g := press(p, 300, 400, nil)
	g.drag(-300, 0, 5, 10*time.Millisecond)
	require.True(t, p.Committed())
	require.Equal(t, []int{7}, capt.acquired)

	p.Handle(Event{Kind: EventCancel})
	require.Zero(t, c.close)
	require.True(t, p.IsOpen())
	require.Equal(t, []int{7}, capt.released)
	requireIdle(t, p)
}

func TestCaptureLostReleasesCapture(t *testing.T) {
	var c calls
	capt := &fakeCapturer{}
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c, WithCapturer(capt))

	g := press(p, 300, 400, nil)
	g.drag(-100, 0, 5, 10*time.Millisecond)
	require.True(t, p.Committed())

	p.CaptureLost()
	require.Equal(t, []int{7}, capt.released)
	require.Zero(t, c.close)
	require.True(t, p.IsOpen())
	requireIdle(t, p)

	p.CaptureLost()
	require.Equal(t, []int{7}, capt.released)
}

func TestCaptureFailureDoesNotAbortGesture(t *testing.T) {
	var c calls
	capt := &fakeCapturer{fail: errors.New("unsupported")}
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c, WithCapturer(capt))

	g := press(p, 300, 400, nil)
	g.drag(-200, 0, 10, 100*time.Millisecond)
	require.True(t, p.Committed())
	g.release()

	require.Equal(t, 1, c.close)
	require.Empty(t, capt.released)
}

func TestNewDownAbandonsPreviousSession(t *testing.T) {
	var c calls
	capt := &fakeCapturer{}
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c, WithCapturer(capt))

	g := press(p, 300, 400, nil)
	g.drag(-100, 0, 5, 10*time.Millisecond)
	require.True(t, p.Committed())

	press(p, 250, 300, nil)
	require.False(t, p.Committed())
	require.True(t, p.SessionLive())
	require.Equal(t, IdleDragState(), p.DragState())
	require.Len(t, capt.released, 1)
}

func TestUncommittedReleaseIsNoop(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	press(p, 300, 400, nil).release()
	require.Zero(t, c.close)
	requireIdle(t, p)

	p.Handle(Event{Kind: EventUp, X: 10, Y: 10})
	requireIdle(t, p)
}

func TestClosedOrDisabledPanelIgnoresInput(t *testing.T) {
	var c calls
	opts := horizontal(SideLeft)
	opts.SwipeToClose = false
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, opts, &c)

	g := press(p, 300, 400, nil)
	g.drag(-300, 0, 5, 10*time.Millisecond)
	require.False(t, p.SessionLive())
	g.release()
	require.Zero(t, c.close)

	p.Close()
	opts.SwipeToClose = true
	p.Configure(opts)
	g = press(p, 300, 400, nil)
	g.drag(-300, 0, 5, 10*time.Millisecond)
	require.False(t, p.SessionLive())
}

func TestDismissAndBackdrop(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.MinimizeMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)

	require.True(t, p.BackdropClick())
	require.Equal(t, ModeMinimized, p.Mode())
	require.Equal(t, 1, c.minimize)
	require.False(t, p.BackdropClick())

	require.True(t, p.Dismiss())
	require.Equal(t, 1, c.close)
	require.False(t, p.Dismiss())

	opts.Dismissible = false
	p.Configure(opts)
	p.Open()
	require.False(t, p.Dismiss())
	require.False(t, p.BackdropClick())
}

func TestBackdropClosesHorizontal(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideRight), &c)
	require.True(t, p.BackdropClick())
	require.Equal(t, 1, c.close)
	require.False(t, p.IsOpen())
}

func TestPresentationHelpers(t *testing.T) {
	var c calls
	opts := DefaultOptions()
	opts.ExpandMode = true
	p := newTestPanel(&fakeHost{viewport: 1000}, opts, &c)

	require.Equal(t, 650.0, p.PresentedExtent())
	require.False(t, p.BodyScrollEnabled())
	require.True(t, p.ShowsDragIndicator())

	g := press(p, 200, 500, nil)
	g.drag(0, -100, 5, 50*time.Millisecond)
	require.InDelta(t, 750.0, p.PresentedExtent(), 1e-9)
	g.drag(0, -100, 5, 10*time.Millisecond)
	g.release()
	require.Equal(t, ModeExpanded, p.Mode())
	require.Equal(t, 968.0, p.PresentedExtent())
	require.True(t, p.BodyScrollEnabled())

	h := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)
	require.False(t, h.ShowsDragIndicator())
	require.Equal(t, 320.0, h.PresentedExtent())
	hg := press(h, 300, 400, nil)
	hg.drag(-50, 0, 5, 50*time.Millisecond)
	require.True(t, h.ShowsDragIndicator())
}

func TestTouchStreamDrivesPanel(t *testing.T) {
	var c calls
	p := newTestPanel(&fakeHost{viewport: 800, width: 320}, horizontal(SideLeft), &c)

	now := epoch
	p.HandleTouch(TouchEvent{Phase: PhaseStart, Touches: []Touch{{X: 300, Y: 400}}, Time: now})
	for x := 290.0; x >= 100; x -= 10 {
		now = now.Add(100 * time.Millisecond)
		p.HandleTouch(TouchEvent{Phase: PhaseMove, Touches: []Touch{{X: x, Y: 400}}, Time: now})
	}
	require.True(t, p.Committed())

	now = now.Add(16 * time.Millisecond)
	p.HandleTouch(TouchEvent{Phase: PhaseMove, Touches: []Touch{{X: 100, Y: 400}, {ID: 1, X: 50, Y: 50}}, Time: now})
	requireIdle(t, p)

	p.HandleTouch(TouchEvent{Phase: PhaseEnd, Changed: []Touch{{X: 100, Y: 400}}, Time: now})
	require.Zero(t, c.close)
}
