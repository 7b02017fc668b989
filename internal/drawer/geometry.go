package drawer

import "math"

// Geometry holds the three reference extents of a vertical panel, in px.
type Geometry struct {
	Header float64
	Dock   float64
	Full   float64
}

// ComputeGeometry derives the extents for a viewport height and size class.
func ComputeGeometry(viewport float64, size SizeClass, t Tuning) Geometry {
	dock := viewport
	if size != SizeFullscreen {
		dock = math.Round(viewport * size.dockFraction())
	}
	return Geometry{
		Header: t.HeaderExtent,
		Dock:   dock,
		Full:   viewport - t.FullMargin,
	}
}

// Extent returns the resting extent for a mode.
func (g Geometry) Extent(m Mode) float64 {
	switch m {
	case ModeExpanded:
		return g.Full
	case ModeMinimized:
		return g.Header
	default:
		return g.Dock
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func pow(x, y float64) float64 {
	return math.Pow(x, y)
}
