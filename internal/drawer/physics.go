package drawer

import "math"

// DragState is the continuous output the renderer applies. It is derived on
// every committed move and never read back as input.
type DragState struct {
	Dragging bool
	Offset   float64 // px translation toward closed, beyond the current extent
	Progress float64 // 0..1 toward the next outcome
	Scale    float64 // >= 1, elastic stretch
	Velocity float64 // px/ms, last sample

	// RealTimeHeight is the live height of a vertical panel; valid only when
	// HasHeight is set.
	RealTimeHeight float64
	HasHeight      bool
}

// IdleDragState is the canonical resting value.
func IdleDragState() DragState {
	return DragState{Scale: 1}
}

// BackdropOpacity fades the backdrop as a drag approaches its outcome.
func (d DragState) BackdropOpacity() float64 {
	if !d.Dragging {
		return 1
	}
	return math.Max(0.1, 1-d.Progress*0.8)
}

// Elastic curves whose windows scale with the panel geometry.
var (
	shrinkOverdrag = Elastic{Exponent: 1.5, MaxScale: 0.10} // window: minAllowed*0.4
	expandOverdrag = Elastic{Exponent: 1.5, MaxScale: 0.08} // window: full*0.3
	wrongDirection = Elastic{Exponent: 1.6, MaxScale: 0.06} // window: extent*0.4
)

func (e Elastic) over(window float64) Elastic {
	e.Window = e.Start + window
	return e
}

// DragInput describes one committed sample.
type DragInput struct {
	Side         Side
	Mode         Mode
	Geometry     Geometry
	PanelWidth   float64
	Delta        float64 // raw axis displacement since the press
	Velocity     float64
	ExpandMode   bool
	MinimizeMode bool
}

// ComputeDrag maps the total displacement since the press onto visuals. It is
// a pure function of its input so repeated samples cannot accumulate drift.
func ComputeDrag(in DragInput, t Tuning) DragState {
	var d DragState
	if in.Side.Vertical() {
		d = verticalDrag(in, t)
	} else {
		d = horizontalDrag(in, t)
	}
	d.Dragging = true
	d.Velocity = in.Velocity
	return d
}

func horizontalDrag(in DragInput, t Tuning) DragState {
	d := DragState{Scale: 1}
	closing := in.Delta * in.Side.closingSign()
	if closing >= 0 {
		d.Offset = math.Min(closing, in.PanelWidth)
		if in.PanelWidth > 0 {
			d.Progress = d.Offset / in.PanelWidth
		}
		return d
	}
	d.Scale = t.HorizontalOverdrag.Scale(-closing)
	return d
}

// minAllowed is the smallest height a closing drag shrinks the panel to
// before translating it.
func minAllowed(in DragInput, t Tuning) float64 {
	switch {
	case in.Mode == ModeExpanded:
		return in.Geometry.Dock
	case in.Mode == ModeNormal && in.MinimizeMode && in.Side == SideBottom:
		return in.Geometry.Header
	case in.Mode == ModeMinimized:
		return -in.Geometry.Header
	}
	return t.ShrinkFloor
}

func verticalDrag(in DragInput, t Tuning) DragState {
	g := in.Geometry
	extent := g.Extent(in.Mode)
	closing := in.Delta * in.Side.closingSign()
	d := DragState{Scale: 1, RealTimeHeight: extent, HasHeight: true}

	if closing > 0 {
		if in.Mode == ModeMinimized {
			d.Offset = closing
			d.Progress = math.Min(closing/(g.Header*t.RestoreThreshold), 1)
			return d
		}
		floor := minAllowed(in, t)
		capacity := math.Max(0, extent-floor)
		shrink := math.Min(closing, capacity)
		if shrink > 0 {
			d.RealTimeHeight = extent - shrink
			if in.Mode == ModeNormal && in.MinimizeMode && in.Side == SideBottom {
				d.Progress = closing / (g.Dock * t.MinimizeProgress)
			} else {
				d.Progress = closing / (g.Dock * t.CloseThreshold)
			}
			if rest := closing - shrink; rest > 0 {
				d.Offset = rest
			}
		} else {
			d.Offset = closing
			d.Progress = closing / (g.Dock * t.SwipeCloseDistance)
		}
		if d.RealTimeHeight <= floor && closing > capacity && floor > 0 {
			d.Scale = shrinkOverdrag.over(floor * 0.4).Scale(closing - capacity)
		}
		d.Progress = math.Min(d.Progress, 1)
		return d
	}

	opening := -closing
	switch {
	case in.Mode == ModeNormal && in.ExpandMode:
		growth := math.Max(0, g.Full-extent)
		d.RealTimeHeight = extent + math.Min(opening, growth)
		if opening > growth {
			d.Scale = expandOverdrag.over(g.Full * 0.3).Scale(opening - growth)
		}
	case in.Mode == ModeMinimized:
		growth := math.Max(0, g.Dock-extent)
		d.RealTimeHeight = extent + math.Min(opening, growth)
	default:
		d.Scale = wrongDirection.over(extent * 0.4).Scale(opening)
	}
	return d
}

// previewState is the non-committing stretch shown while content at a limit
// is pushed further.
func previewState(scale float64) DragState {
	return DragState{Dragging: true, Scale: scale}
}
