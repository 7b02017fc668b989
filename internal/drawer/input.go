package drawer

import "time"

// Target answers the host's questions about the element under the pointer
// when a gesture starts.
type Target interface {
	// Interactive reports a control or editable region on the ancestor chain.
	Interactive() bool
	// InScrollableBody reports whether the element sits inside the panel's
	// designated scrollable region.
	InScrollableBody() bool
	// IgnoresGesture reports an explicit opt-out from drag handling.
	IgnoresGesture() bool
}

// TargetFlags is a Target with fixed answers.
type TargetFlags struct {
	IsInteractive bool
	InBody        bool
	Ignore        bool
}

func (f TargetFlags) Interactive() bool      { return f.IsInteractive }
func (f TargetFlags) InScrollableBody() bool { return f.InBody }
func (f TargetFlags) IgnoresGesture() bool   { return f.Ignore }

// EventKind is the canonical gesture phase.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	}
	return "unknown"
}

// Event is the single input shape the rest of the package reasons about.
type Event struct {
	Kind      EventKind
	X, Y      float64
	PointerID int
	Target    Target
	Time      time.Time
}

// Phase is shared by raw pointer and touch events.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// PointerEvent is a raw pointer (mouse, pen, single pointer) sample.
type PointerEvent struct {
	Phase     Phase
	X, Y      float64
	PointerID int
	Target    Target
	Time      time.Time
}

// Touch is one contact of a TouchEvent.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchEvent is a raw touch sample. Touches lists contacts still on the
// surface; Changed lists those that triggered this event.
type TouchEvent struct {
	Phase   Phase
	Touches []Touch
	Changed []Touch
	Target  Target
	Time    time.Time
}

// touchPointerID marks events synthesized from touches.
const touchPointerID = -1

// Adapter folds pointer and touch streams into Events.
type Adapter struct{}

// Pointer normalizes a pointer event. It never drops one.
func (Adapter) Pointer(e PointerEvent) (Event, bool) {
	return Event{
		Kind:      phaseKind(e.Phase),
		X:         e.X,
		Y:         e.Y,
		PointerID: e.PointerID,
		Target:    e.Target,
		Time:      e.Time,
	}, true
}

// Touch normalizes a single-finger touch event. A start with other than one
// contact is dropped. A move or end that sees more than one contact abandons
// the gesture as a Cancel. An end without a changed contact is dropped.
func (Adapter) Touch(e TouchEvent) (Event, bool) {
	ev := Event{
		Kind:      phaseKind(e.Phase),
		PointerID: touchPointerID,
		Target:    e.Target,
		Time:      e.Time,
	}
	switch e.Phase {
	case PhaseStart:
		if len(e.Touches) != 1 {
			return Event{}, false
		}
		ev.X, ev.Y = e.Touches[0].X, e.Touches[0].Y
	case PhaseMove:
		if len(e.Touches) != 1 {
			ev.Kind = EventCancel
			return ev, true
		}
		ev.X, ev.Y = e.Touches[0].X, e.Touches[0].Y
	case PhaseEnd:
		if len(e.Changed) == 0 {
			return Event{}, false
		}
		if len(e.Touches) > 1 {
			ev.Kind = EventCancel
			return ev, true
		}
		ev.X, ev.Y = e.Changed[0].X, e.Changed[0].Y
	case PhaseCancel:
		if len(e.Changed) > 0 {
			ev.X, ev.Y = e.Changed[0].X, e.Changed[0].Y
		}
	}
	return ev, true
}

func phaseKind(p Phase) EventKind {
	switch p {
	case PhaseStart:
		return EventDown
	case PhaseMove:
		return EventMove
	case PhaseEnd:
		return EventUp
	default:
		return EventCancel
	}
}
