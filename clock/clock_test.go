package clock

import (
	"math"
	"testing"
	"time"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestTickClockCountsTicks(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewTickClock(mock)

	if c.Now() != 0 {
		t.Fatalf("Expected tick 0 at start, got %v", c.Now())
	}
	mock.Advance(500 * time.Millisecond)
	if got := c.Now(); !near(got, 30) {
		t.Errorf("Expected 30 ticks after 500ms, got %v", got)
	}
}

func TestTickClockPause(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewTickClock(mock)

	mock.Advance(time.Second)
	c.Pause()
	mock.Advance(10 * time.Second)
	if got := c.Now(); !near(got, 60) {
		t.Errorf("Expected frozen at 60 while paused, got %v", got)
	}
	if !c.IsPaused() {
		t.Errorf("Expected paused")
	}

	c.Resume()
	if got := c.Now(); !near(got, 60) {
		t.Errorf("Expected 60 right after resume, got %v", got)
	}
	mock.Advance(time.Second)
	if got := c.Now(); !near(got, 120) {
		t.Errorf("Expected 120 after another second, got %v", got)
	}

	if paused := c.Toggle(); !paused {
		t.Errorf("Toggle should pause a running clock")
	}
	if paused := c.Toggle(); paused {
		t.Errorf("Toggle should resume a paused clock")
	}
}

func TestManual(t *testing.T) {
	m := NewManual(5)
	m.Advance(2.5)
	if m.Now() != 7.5 {
		t.Errorf("Expected 7.5, got %v", m.Now())
	}
	m.Set(1)
	if m.Now() != 1 {
		t.Errorf("Expected 1, got %v", m.Now())
	}
}
