package drawer

// Elastic describes a rubber-band curve: once the overdrag passes Start, the
// visual scale grows as pow(normalized, Exponent)*MaxScale until Window.
type Elastic struct {
	Start    float64
	Window   float64
	Exponent float64
	MaxScale float64
}

// Scale returns the visual scale for an overdrag distance. A non-positive
// window yields 1.
func (e Elastic) Scale(distance float64) float64 {
	span := e.Window - e.Start
	if span <= 0 {
		return 1
	}
	n := clamp((distance-e.Start)/span, 0, 1)
	return 1 + pow(n, e.Exponent)*e.MaxScale
}

// Tuning holds every threshold the gesture pipeline uses. DefaultTuning
// returns the shipped values; hosts may override them from config.
type Tuning struct {
	MovementDeadzone    float64 // px before an uncommitted session may commit
	InteractiveDeadzone float64 // px required when the press started on a control
	HorizontalDominance float64
	VerticalDominance   float64

	CloseThreshold    float64 // fraction of travel
	VelocityThreshold float64 // px/ms
	SwipeMinDistance  float64 // px
	VelocityWindow    int

	HeaderExtent  float64 // px
	FullMargin    float64 // px subtracted from the viewport for the full extent
	ShrinkFloor   float64 // px, lowest height before translation takes over
	OverflowSlack float64 // px of scroll height that does not count as overflow

	MinimizeThreshold     float64 // fraction of dock that minimizes on release
	MinimizeProgress      float64 // fraction of dock used as the progress denominator
	ExpandThreshold       float64 // fraction of dock dragged open to expand
	SwipeCloseDistance    float64 // fraction of dock a closing swipe must cover
	RestoreThreshold      float64 // fraction of header from minimized
	ExpandedCloseDistance float64 // fraction of full that closes from expanded
	ExpandedDockDistance  float64 // fraction of dock that returns expanded to normal

	// SkipMinimizeVelocity and SkipMinimizeDistance gate a close that bypasses
	// minimize. Both were tuned by hand.
	SkipMinimizeVelocity float64 // multiple of VelocityThreshold
	SkipMinimizeDistance float64 // multiple of dock

	HorizontalOverdrag Elastic
	HorizontalPreview  Elastic
	BodyPreview        Elastic
}

// DefaultTuning returns the stock thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		MovementDeadzone:    8,
		InteractiveDeadzone: 16,
		HorizontalDominance: 1.1,
		VerticalDominance:   1.2,

		CloseThreshold:    0.4,
		VelocityThreshold: 0.5,
		SwipeMinDistance:  30,
		VelocityWindow:    6,

		HeaderExtent:  80,
		FullMargin:    32,
		ShrinkFloor:   20,
		OverflowSlack: 10,

		MinimizeThreshold:     0.15,
		MinimizeProgress:      0.2,
		ExpandThreshold:       0.3,
		SwipeCloseDistance:    0.6,
		RestoreThreshold:      0.5,
		ExpandedCloseDistance: 0.4,
		ExpandedDockDistance:  0.3,

		SkipMinimizeVelocity: 3,
		SkipMinimizeDistance: 1.2,

		HorizontalOverdrag: Elastic{Start: 15, Window: 200, Exponent: 2.0, MaxScale: 0.05},
		HorizontalPreview:  Elastic{Start: 12, Window: 180, Exponent: 2.1, MaxScale: 0.04},
		BodyPreview:        Elastic{Start: 15, Window: 250, Exponent: 2.2, MaxScale: 0.03},
	}
}
