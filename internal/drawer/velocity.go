package drawer

import "time"

// VelocityTracker keeps a rolling window of signed per-sample speeds along
// the gesture axis, in px/ms.
type VelocityTracker struct {
	size    int
	samples []float64
	lastPos float64
	lastAt  time.Time
	primed  bool
}

// NewVelocityTracker returns a tracker holding at most size samples.
func NewVelocityTracker(size int) *VelocityTracker {
	if size < 1 {
		size = 1
	}
	return &VelocityTracker{size: size, samples: make([]float64, 0, size)}
}

// Start records the gesture origin without producing a sample.
func (v *VelocityTracker) Start(pos float64, at time.Time) {
	v.samples = v.samples[:0]
	v.lastPos = pos
	v.lastAt = at
	v.primed = true
}

// Add records a sample and returns its instantaneous speed. Elapsed time is
// floored at one millisecond so repeated timestamps stay finite.
func (v *VelocityTracker) Add(pos float64, at time.Time) float64 {
	if !v.primed {
		v.Start(pos, at)
		return 0
	}
	ms := float64(at.Sub(v.lastAt)) / float64(time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	speed := (pos - v.lastPos) / ms
	if len(v.samples) == v.size {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:v.size-1]
	}
	v.samples = append(v.samples, speed)
	v.lastPos = pos
	v.lastAt = at
	return speed
}

// Average is the mean of the window, 0 when empty.
func (v *VelocityTracker) Average() float64 {
	if len(v.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range v.samples {
		sum += s
	}
	return sum / float64(len(v.samples))
}

// Last is the most recent sample, 0 when empty.
func (v *VelocityTracker) Last() float64 {
	if len(v.samples) == 0 {
		return 0
	}
	return v.samples[len(v.samples)-1]
}

// Len is the number of samples held.
func (v *VelocityTracker) Len() int {
	return len(v.samples)
}

// Reset empties the window.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
	v.lastPos = 0
	v.lastAt = time.Time{}
	v.primed = false
}
