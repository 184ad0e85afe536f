// Package structure is the read-only capability contract a host simulation
// exposes for its transport structures
package structure

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/transit"
)

// Kind tags the variant held by a Structure
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindSimpleBridge moves items instantly; only its inventory is visible
	KindSimpleBridge
	// KindBufferedBridge carries items through a ring buffer to a linked bridge
	KindBufferedBridge
	// KindJunction passes items straight across through four lane buffers
	KindJunction
	// KindPassthrough is a directional bridge with an inventory only
	KindPassthrough
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindSimpleBridge:   "simple_bridge",
	KindBufferedBridge: "buffered_bridge",
	KindJunction:       "junction",
	KindPassthrough:    "passthrough",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind, KindUnknown if unrecognized
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return KindUnknown
}

// Stack is an inventory entry: Amount items of catalog index Item
type Stack struct {
	Item   int
	Amount int
}

// BufferedBridge is the payload of KindBufferedBridge
type BufferedBridge struct {
	Buffer    transit.Buffer
	Capacity  int     // declared buffer capacity
	Speed     float64 // ticks to cross the link at TimeScale 1
	TimeScale float64
	Warmup    float64
	LinkValid bool
	Link      core.Point // linked tile, meaningful when LinkValid
	LinkPos   core.Vec   // linked structure center, world units
}

// Junction is the payload of KindJunction
type Junction struct {
	Lanes        transit.LaneBuffer
	LaneCapacity int
	Speed        float64
	TimeScale    float64
}

// Structure is a frame-scoped view of one transport structure
// Exactly the payload matching Kind is non-nil; slices alias host memory and
// must not be retained or written
type Structure struct {
	Kind     Kind
	Pos      core.Point // tile
	Center   core.Vec   // world units
	Rotation int        // facing direction, 0..3
	Items    []Stack

	Bridge   *BufferedBridge
	Junction *Junction
}

// Valid reports whether the payload matches the kind tag
func (s *Structure) Valid() bool {
	switch s.Kind {
	case KindBufferedBridge:
		return s.Bridge != nil && s.Junction == nil
	case KindJunction:
		return s.Junction != nil && s.Bridge == nil
	case KindSimpleBridge, KindPassthrough:
		return s.Bridge == nil && s.Junction == nil
	default:
		return false
	}
}

// ItemCount returns the total inventory amount
func (s *Structure) ItemCount() int {
	n := 0
	for _, st := range s.Items {
		n += max(st.Amount, 0)
	}
	return n
}

// BridgeLink converts a buffered bridge payload to an interpolation link
func (s *Structure) BridgeLink() transit.Link {
	b := s.Bridge
	if b == nil {
		return transit.Link{}
	}
	return transit.Link{
		Valid:  b.LinkValid,
		From:   s.Pos,
		To:     b.Link,
		Target: b.LinkPos,
		Warmup: b.Warmup,
	}
}
