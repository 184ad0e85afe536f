// Package clock supplies the animation time base shared by the demo
// simulation and the overlay, measured in simulation ticks
package clock

import (
	"sync"
	"time"
)

// TicksPerSecond converts wall time to simulation ticks
const TicksPerSecond = 60.0

// TimeProvider supplies wall-clock readings
type TimeProvider interface {
	Now() time.Time
}

// SystemTime provides the real system time with monotonic clock readings
type SystemTime struct{}

// Now returns the current time with monotonic clock reading
func (SystemTime) Now() time.Time { return time.Now() }

// TickClock converts elapsed wall time into ticks, excluding paused spans
type TickClock struct {
	mu       sync.Mutex
	provider TimeProvider
	start    time.Time
	paused   bool
	pausedAt time.Time
	idle     time.Duration // cumulative paused duration
}

// NewTickClock starts a clock at tick 0 using provider, or the system time if nil
func NewTickClock(provider TimeProvider) *TickClock {
	if provider == nil {
		provider = SystemTime{}
	}
	return &TickClock{provider: provider, start: provider.Now()}
}

// Now returns elapsed ticks; frozen while paused
func (c *TickClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.provider.Now()
	if c.paused {
		at = c.pausedAt
	}
	return at.Sub(c.start).Seconds()*TicksPerSecond - c.idle.Seconds()*TicksPerSecond
}

// Pause stops tick advancement
func (c *TickClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		c.paused = true
		c.pausedAt = c.provider.Now()
	}
}

// Resume continues tick advancement
func (c *TickClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.idle += c.provider.Now().Sub(c.pausedAt)
		c.paused = false
	}
}

// Toggle flips the pause state and returns the new state
func (c *TickClock) Toggle() bool {
	if c.IsPaused() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused reports the pause state
func (c *TickClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Manual is a tick source advanced explicitly, used by tests and the headless sim
type Manual struct {
	mu  sync.RWMutex
	now float64
}

// NewManual creates a manual clock at tick start
func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

// Now returns the current tick
func (m *Manual) Now() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps to tick t
func (m *Manual) Set(t float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d ticks
func (m *Manual) Advance(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}
