package drawer

import "math"

// ScrollMetrics are the host's facts about the scrollable body, in px.
type ScrollMetrics struct {
	Top          float64
	Height       float64
	ClientHeight float64
}

func (m ScrollMetrics) AtTop() bool {
	return m.Top <= 1
}

func (m ScrollMetrics) AtBottom() bool {
	return m.Top+m.ClientHeight >= m.Height-1
}

// Overflows reports content taller than the viewport by more than slack.
func (m ScrollMetrics) Overflows(slack float64) bool {
	return m.Height > m.ClientHeight+slack
}

// Verdict is the classifier's decision for one uncommitted move.
type Verdict int

const (
	// VerdictWait leaves everything as is: the move is still inside the
	// deadzone and may yet become a tap.
	VerdictWait Verdict = iota
	// VerdictDecline hands the move to the content.
	VerdictDecline
	// VerdictPreview hands the move to the content but shows an elastic
	// stretch because the content is already at its limit.
	VerdictPreview
	// VerdictCommit takes the gesture for the panel.
	VerdictCommit
)

func (v Verdict) String() string {
	switch v {
	case VerdictWait:
		return "wait"
	case VerdictDecline:
		return "decline"
	case VerdictPreview:
		return "preview"
	case VerdictCommit:
		return "commit"
	}
	return "unknown"
}

// Classification carries a verdict and, for previews, the stretch to show.
type Classification struct {
	Verdict Verdict
	Scale   float64
}

// ClassifyInput is one uncommitted move in context.
type ClassifyInput struct {
	Side       Side
	Mode       Mode
	ExpandMode bool

	Primary float64 // displacement along the gesture axis
	Cross   float64

	Interactive bool
	InBody      bool
	Ignored     bool

	Body    ScrollMetrics
	HasBody bool
}

// Classify decides whether an uncommitted session should commit.
func Classify(in ClassifyInput, t Tuning) Classification {
	moved := math.Abs(in.Primary)
	if moved < t.MovementDeadzone {
		return Classification{Verdict: VerdictWait, Scale: 1}
	}
	if in.Ignored {
		return Classification{Verdict: VerdictDecline, Scale: 1}
	}

	ratio := t.HorizontalDominance
	if in.Side.Vertical() {
		ratio = t.VerticalDominance
	}
	dominant := moved >= math.Abs(in.Cross)*ratio
	intent := !in.Interactive || moved >= t.InteractiveDeadzone
	if dominant && intent && boundaryAllows(in, t) {
		return Classification{Verdict: VerdictCommit, Scale: 1}
	}

	opening := in.Primary*in.Side.closingSign() < 0
	if opening && moved > t.MovementDeadzone {
		if !in.Side.Vertical() {
			return Classification{Verdict: VerdictPreview, Scale: t.HorizontalPreview.Scale(moved)}
		}
		if in.InBody && in.HasBody && in.Body.Overflows(t.OverflowSlack) && openingBoundary(in) {
			return Classification{Verdict: VerdictPreview, Scale: t.BodyPreview.Scale(moved)}
		}
	}
	return Classification{Verdict: VerdictDecline, Scale: 1}
}

// boundaryAllows applies scroll-boundary gating for presses that began inside
// an overflowing body of a vertical panel.
func boundaryAllows(in ClassifyInput, t Tuning) bool {
	if !in.Side.Vertical() || in.Mode == ModeMinimized {
		return true
	}
	if !in.InBody || !in.HasBody || !in.Body.Overflows(t.OverflowSlack) {
		return true
	}
	if in.Primary*in.Side.closingSign() > 0 {
		return closingBoundary(in)
	}
	// past the opening edge, expanded or expand-less panels only preview
	return in.Mode == ModeNormal && in.ExpandMode
}

// closingBoundary is the scroll edge past which dragging toward closed no
// longer scrolls the content.
func closingBoundary(in ClassifyInput) bool {
	if in.Side == SideBottom {
		return in.Body.AtTop()
	}
	return in.Body.AtBottom()
}

func openingBoundary(in ClassifyInput) bool {
	if in.Side == SideBottom {
		return in.Body.AtBottom()
	}
	return in.Body.AtTop()
}
