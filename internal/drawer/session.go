package drawer

import "time"

// Session is the record of one press-to-release interaction.
type Session struct {
	OriginX, OriginY float64
	LastAxis         float64
	StartTime        time.Time
	PointerID        int

	// Committed is one-way for the life of the session.
	Committed bool

	TargetInteractive bool
	StartedInBody     bool
	Ignored           bool

	live     bool
	vertical bool
	velocity *VelocityTracker
}

func newSession(window int) *Session {
	return &Session{velocity: NewVelocityTracker(window)}
}

// Live reports whether a press is being tracked.
func (s *Session) Live() bool {
	return s.live
}

// Velocity exposes the rolling speed window.
func (s *Session) Velocity() *VelocityTracker {
	return s.velocity
}

func (s *Session) begin(e Event, vertical bool) {
	s.clear()
	s.live = true
	s.vertical = vertical
	s.OriginX, s.OriginY = e.X, e.Y
	s.StartTime = e.Time
	s.PointerID = e.PointerID
	if e.Target != nil {
		s.TargetInteractive = e.Target.Interactive()
		s.StartedInBody = e.Target.InScrollableBody()
		s.Ignored = e.Target.IgnoresGesture()
	}
	s.LastAxis = s.axis(e.X, e.Y)
	s.velocity.Start(s.LastAxis, e.Time)
}

// sample feeds a move into the velocity window.
func (s *Session) sample(e Event) {
	s.LastAxis = s.axis(e.X, e.Y)
	s.velocity.Add(s.LastAxis, e.Time)
}

// Displacement returns the total signed movement since the origin along the
// gesture axis and across it.
func (s *Session) Displacement(x, y float64) (primary, cross float64) {
	dx, dy := x-s.OriginX, y-s.OriginY
	if s.vertical {
		return dy, dx
	}
	return dx, dy
}

func (s *Session) axis(x, y float64) float64 {
	if s.vertical {
		return y
	}
	return x
}

func (s *Session) clear() {
	s.OriginX, s.OriginY = 0, 0
	s.LastAxis = 0
	s.StartTime = time.Time{}
	s.PointerID = 0
	s.Committed = false
	s.TargetInteractive = false
	s.StartedInBody = false
	s.Ignored = false
	s.live = false
	s.velocity.Reset()
}
