package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/transit-overlay/core"
)

// Palette for static tiles and the HUD
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38} // Tokyo Night background
	RgbGrid       = core.RGB{R: 36, G: 38, B: 52}

	RgbSourceBg  = core.RGB{R: 30, G: 60, B: 40}
	RgbSinkBg    = core.RGB{R: 60, G: 30, B: 36}
	RgbBridgeBg  = core.RGB{R: 52, G: 56, B: 84}
	RgbSimpleBg  = core.RGB{R: 44, G: 48, B: 64}
	RgbJunctBg   = core.RGB{R: 70, G: 60, B: 40}
	RgbPassBg    = core.RGB{R: 40, G: 54, B: 60}
	RgbLinkLine  = core.RGB{R: 90, G: 96, B: 140}
	RgbTileGlyph = core.RGB{R: 150, G: 155, B: 180}

	RgbStatusBg   = core.RGB{R: 135, G: 206, B: 250} // Light sky blue
	RgbStatusText = core.RGB{R: 0, G: 0, B: 0}
	RgbPausedBg   = core.RGB{R: 255, G: 165, B: 0}
	RgbStuckBg    = core.RGB{R: 200, G: 50, B: 50}
)

// toColor converts to a tcell truecolor value
func toColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
