package transit

import (
	"fmt"
	"math"

	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/vmath"
)

// Transit holds the validated timing parameters of one structure
// speed is the ticks an item needs to cross the path at timeScale 1
type Transit struct {
	speed     float64
	timeScale float64
	capacity  int
}

// NewTransit validates interpolation parameters
func NewTransit(speed, timeScale float64, capacity int) (Transit, error) {
	if !(speed > 0) || !vmath.Finite(speed) {
		return Transit{}, fmt.Errorf("speed %v: %w", speed, ErrInvalidTransit)
	}
	if !(timeScale > 0) || !vmath.Finite(timeScale) {
		return Transit{}, fmt.Errorf("time scale %v: %w", timeScale, ErrInvalidTransit)
	}
	if capacity <= 0 {
		return Transit{}, fmt.Errorf("capacity %d: %w", capacity, ErrInvalidTransit)
	}
	return Transit{speed: speed, timeScale: timeScale, capacity: capacity}, nil
}

// Capacity returns the slot count the progress ceiling is computed against
func (t Transit) Capacity() int { return t.capacity }

// Ceiling returns the highest progress an item in slot may show
// An item never visually passes the item queued ahead of it
func (t Transit) Ceiling(slot int) float64 {
	return vmath.Clamp01(float64(t.capacity-slot-1) / float64(t.capacity))
}

// Progress returns the fraction of the path covered by the item in slot
// that arrived at arrival, evaluated at now
func (t Transit) Progress(slot int, arrival, now float64) float64 {
	c := float64(t.capacity)
	raw := (now - arrival) * t.timeScale / t.speed * c
	return vmath.Clamp01(math.Min(raw, c-float64(slot)-1) / c)
}

// PositionAlong returns the world position of the item in slot along p
func (t Transit) PositionAlong(p Path, slot int, arrival, now float64) core.Vec {
	return p.At(t.Progress(slot, arrival, now))
}

// PositionAlong is the single-call form of Transit.PositionAlong
// Invalid parameters leave the item at begin
func PositionAlong(begin, end core.Vec, slot int, arrival, now, speed, timeScale float64, capacity int) core.Vec {
	t, err := NewTransit(speed, timeScale, capacity)
	if err != nil {
		return begin
	}
	return t.PositionAlong(Path{Begin: begin, End: end}, slot, arrival, now)
}
