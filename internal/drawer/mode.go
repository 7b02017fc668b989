package drawer

import "math"

// Mode is the resting presentation of a vertical panel. Horizontal panels
// stay in ModeNormal.
type Mode int

const (
	ModeNormal Mode = iota
	ModeExpanded
	ModeMinimized
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeExpanded:
		return "expanded"
	case ModeMinimized:
		return "minimized"
	}
	return "unknown"
}

// Notice names the callback a transition fires.
type Notice int

const (
	NoticeNone Notice = iota
	NoticeMinimize
	NoticeRestore
	NoticeClose
)

func (n Notice) String() string {
	switch n {
	case NoticeMinimize:
		return "minimize"
	case NoticeRestore:
		return "restore"
	case NoticeClose:
		return "close"
	}
	return "none"
}

// Transition is the result of evaluating a release.
type Transition struct {
	From, To Mode
	Notice   Notice
}

// Closed reports whether the panel leaves the screen.
func (t Transition) Closed() bool {
	return t.Notice == NoticeClose
}

// Changed reports a mode change or close.
func (t Transition) Changed() bool {
	return t.From != t.To || t.Notice != NoticeNone
}

// Release is everything the mode machine needs at the end of a committed
// gesture.
type Release struct {
	Side         Side
	Mode         Mode
	Geometry     Geometry
	PanelWidth   float64
	Delta        float64 // raw axis displacement since the press
	AvgVelocity  float64 // raw axis px/ms
	ExpandMode   bool
	MinimizeMode bool
}

// ClosingDelta is Delta normalized so positive means toward closed.
func (r Release) ClosingDelta() float64 {
	return r.Delta * r.Side.closingSign()
}

func (r Release) closingVelocity() float64 {
	return r.AvgVelocity * r.Side.closingSign()
}

// Resolve picks the next mode for a committed release.
func Resolve(r Release, t Tuning) Transition {
	if r.Side.Vertical() {
		return resolveVertical(r, t)
	}
	return resolveHorizontal(r, t)
}

func resolveHorizontal(r Release, t Tuning) Transition {
	stay := Transition{From: ModeNormal, To: ModeNormal}
	closing := r.ClosingDelta()
	if closing < 0 {
		return stay
	}
	var progress float64
	if r.PanelWidth > 0 {
		progress = closing / r.PanelWidth
	}
	swipe := r.closingVelocity() > t.VelocityThreshold
	if swipe || progress >= t.CloseThreshold {
		stay.Notice = NoticeClose
	}
	return stay
}

func resolveVertical(r Release, t Tuning) Transition {
	g := r.Geometry
	closing := r.ClosingDelta()
	v := r.closingVelocity()
	swipes := math.Abs(r.Delta) > t.SwipeMinDistance
	swipeClosing := swipes && v > t.VelocityThreshold
	swipeOpening := swipes && v < -t.VelocityThreshold

	tr := Transition{From: r.Mode, To: r.Mode}
	switch r.Mode {
	case ModeNormal:
		switch {
		case r.ExpandMode && (swipeOpening || closing < -g.Dock*t.ExpandThreshold):
			tr.To = ModeExpanded
		case r.MinimizeMode:
			if closing > g.Dock*t.MinimizeThreshold {
				tr.To = ModeMinimized
				tr.Notice = NoticeMinimize
			} else if swipeClosing &&
				v > t.VelocityThreshold*t.SkipMinimizeVelocity &&
				closing > g.Dock*t.SkipMinimizeDistance {
				tr.Notice = NoticeClose
			}
		case swipeClosing && closing > g.Dock*t.SwipeCloseDistance:
			tr.Notice = NoticeClose
		case closing >= g.Dock*t.CloseThreshold:
			tr.Notice = NoticeClose
		}
	case ModeMinimized:
		switch {
		case swipeOpening || closing < -g.Header*t.RestoreThreshold:
			tr.To = ModeNormal
			tr.Notice = NoticeRestore
		case swipeClosing || closing > g.Header*t.RestoreThreshold:
			tr.Notice = NoticeClose
		}
	case ModeExpanded:
		switch {
		case swipeClosing:
			tr.Notice = NoticeClose
		case closing > g.Full*t.ExpandedCloseDistance:
			tr.Notice = NoticeClose
		case closing > g.Dock*t.ExpandedDockDistance:
			tr.To = ModeNormal
		}
	}
	return tr
}
