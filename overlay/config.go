package overlay

import (
	"fmt"
	"strings"
)

// IndexMode selects the spatial index built at world load
type IndexMode string

const (
	IndexAuto     IndexMode = "auto"
	IndexQuadTree IndexMode = "quadtree"
	IndexFlat     IndexMode = "flat"
)

// ParseIndexMode accepts auto, quadtree or flat
func ParseIndexMode(s string) (IndexMode, error) {
	switch m := IndexMode(strings.ToLower(strings.TrimSpace(s))); m {
	case IndexAuto, IndexQuadTree, IndexFlat:
		return m, nil
	case "":
		return IndexAuto, nil
	default:
		return "", fmt.Errorf("index mode %q: want auto, quadtree or flat", s)
	}
}

// Config tunes the renderer
type Config struct {
	// Index picks the spatial index; auto uses the flat list up to FlatThreshold structures
	Index         IndexMode
	FlatThreshold int

	// Layer is passed to Drawer.Begin; just above the host's power layer
	Layer float64
	// BridgeAlpha is the icon alpha for bridge items
	BridgeAlpha float64

	// Strict panics on decode invariant violations instead of skipping slots
	Strict bool

	// ScratchSlots pre-sizes the decode arena
	ScratchSlots int

	// MetricPrefix namespaces the status registry keys
	MetricPrefix string
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		Index:         IndexAuto,
		FlatThreshold: 64,
		Layer:         71,
		BridgeAlpha:   0.8,
		ScratchSlots:  64,
		MetricPrefix:  "overlay.",
	}
}
