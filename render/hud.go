package render

import (
	"fmt"

	"github.com/lixenwraith/transit-overlay/status"
)

// HUD draws the one-line status bar from the metrics registry
type HUD struct {
	Metrics *status.Registry
	Prefix  string // metric key prefix shown in the summary
}

// Draw fills row y with the tick, pause state and metric summary
// The bar turns red while any bridge is stuck
func (h HUD) Draw(buf *RenderBuffer, y int, tick float64, paused bool) {
	bg := RgbStatusBg
	if paused {
		bg = RgbPausedBg
	}
	if h.Metrics != nil && h.Metrics.Ints.Get(h.Prefix+"stuck").Load() > 0 {
		bg = RgbStuckBg
	}
	buf.FillRow(y, bg)

	text := fmt.Sprintf(" t=%.0f", tick)
	if paused {
		text += " PAUSED"
	}
	if h.Metrics != nil {
		text += " | " + h.Metrics.Summary(h.Prefix)
	}
	buf.SetText(0, y, text, RgbStatusText, bg)
}
