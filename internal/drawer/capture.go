package drawer

import "go.uber.org/zap"

// Capturer routes every subsequent sample of a pointer to the panel, even
// outside its bounds. It is best-effort: errors never abort a gesture.
type Capturer interface {
	Acquire(pointerID int) error
	Release(pointerID int) error
}

type nopCapturer struct{}

func (nopCapturer) Acquire(int) error { return nil }
func (nopCapturer) Release(int) error { return nil }

// captureScope is held from commit until reset. release is safe to call
// whether or not acquisition succeeded.
type captureScope struct {
	capturer  Capturer
	pointerID int
	held      bool
}

func acquireCapture(c Capturer, pointerID int, log *zap.Logger) *captureScope {
	s := &captureScope{capturer: c, pointerID: pointerID}
	if err := c.Acquire(pointerID); err != nil {
		log.Debug("pointer capture unavailable", zap.Int("pointer", pointerID), zap.Error(err))
		return s
	}
	s.held = true
	return s
}

func (s *captureScope) release(log *zap.Logger) {
	if s == nil || !s.held {
		return
	}
	s.held = false
	if err := s.capturer.Release(s.pointerID); err != nil {
		log.Debug("pointer capture release failed", zap.Int("pointer", s.pointerID), zap.Error(err))
	}
}
