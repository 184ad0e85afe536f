// Package sim is a small tile-based transport simulation acting as the
// overlay's host in the demo and in end-to-end tests
package sim

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/structure"
	"github.com/lixenwraith/transit-overlay/transit"
)

// Block is the kind of a placed building
type Block uint8

const (
	BlockSource Block = iota + 1
	BlockSink
	BlockSimpleBridge
	BlockBufferedBridge
	BlockJunction
	BlockPassthrough
)

// Defaults mirror the stock transport blocks
const (
	BridgeRange       = 4
	BridgeCapacity    = 14
	BridgeSpeed       = 40.0
	JunctionCapacity  = 6
	JunctionSpeed     = 26.0
	ItemCapacity      = 10
	ForwardEvery      = 8.0
	WarmupTicks       = 30.0
	DefaultEmitPeriod = 20.0
)

var blockNames = map[string]Block{
	"source":          BlockSource,
	"sink":            BlockSink,
	"simple_bridge":   BlockSimpleBridge,
	"buffered_bridge": BlockBufferedBridge,
	"junction":        BlockJunction,
	"passthrough":     BlockPassthrough,
}

// ParseBlock maps a layout block name to a Block
func ParseBlock(name string) (Block, bool) {
	b, ok := blockNames[name]
	return b, ok
}

// Transport maps a block to the structure kind the overlay sees
func (b Block) Transport() structure.Kind {
	switch b {
	case BlockSimpleBridge:
		return structure.KindSimpleBridge
	case BlockBufferedBridge:
		return structure.KindBufferedBridge
	case BlockJunction:
		return structure.KindJunction
	case BlockPassthrough:
		return structure.KindPassthrough
	default:
		return structure.KindUnknown
	}
}

// Building is one placed block; fields are owned by the World's update loop
type Building struct {
	Block    Block
	Pos      core.Point
	Rotation int // output direction for sources, passthroughs and unlinked bridges

	// Source
	Item   int
	Period float64
	next   float64

	// Buffered and simple bridges
	Link      core.Point
	HasLink   bool
	Speed     float64
	TimeScale float64
	Capacity  int
	warmup    float64
	buffer    []uint64
	index     int

	// Junction
	lanes   [4][]uint64
	laneIdx [4]int

	items    []structure.Stack
	lastMove float64
	Consumed int

	// Reused frame views handed to the overlay
	bridgeView   structure.BufferedBridge
	junctionView structure.Junction
	laneRecords  [][]uint64
	laneIndexes  []int
}

// NewBuilding creates a building with stock parameters for its block
func NewBuilding(block Block, pos core.Point, rotation int) *Building {
	b := &Building{Block: block, Pos: pos, Rotation: rotation, TimeScale: 1}
	switch block {
	case BlockSource:
		b.Period = DefaultEmitPeriod
	case BlockBufferedBridge:
		b.Speed = BridgeSpeed
		b.Capacity = BridgeCapacity
	case BlockJunction:
		b.Speed = JunctionSpeed
		b.Capacity = JunctionCapacity
	}
	b.alloc()
	return b
}

// alloc sizes buffers after Capacity is final
func (b *Building) alloc() {
	switch b.Block {
	case BlockBufferedBridge:
		b.buffer = make([]uint64, b.Capacity)
		b.index = 0
	case BlockJunction:
		b.laneRecords = make([][]uint64, 4)
		b.laneIndexes = make([]int, 4)
		for i := range b.lanes {
			b.lanes[i] = make([]uint64, b.Capacity)
			b.laneIdx[i] = 0
		}
	}
}

// Held returns the inventory item total
func (b *Building) Held() int {
	n := 0
	for _, st := range b.items {
		n += st.Amount
	}
	return n
}

// InFlight returns the number of buffered items
func (b *Building) InFlight() int {
	switch b.Block {
	case BlockBufferedBridge:
		return b.index
	case BlockJunction:
		n := 0
		for _, idx := range b.laneIdx {
			n += idx
		}
		return n
	}
	return 0
}

// Warmup returns the bridge's link activation fraction
func (b *Building) Warmup() float64 { return b.warmup }

func (b *Building) addItem(item int) {
	for i := range b.items {
		if b.items[i].Item == item {
			b.items[i].Amount++
			return
		}
	}
	b.items = append(b.items, structure.Stack{Item: item, Amount: 1})
}

// takeItem removes one item, oldest stack first
func (b *Building) takeItem() (int, bool) {
	if len(b.items) == 0 {
		return 0, false
	}
	item := b.items[0].Item
	b.items[0].Amount--
	if b.items[0].Amount <= 0 {
		b.items = append(b.items[:0], b.items[1:]...)
	}
	return item, true
}

func (b *Building) peekItem() (int, bool) {
	if len(b.items) == 0 {
		return 0, false
	}
	return b.items[0].Item, true
}

// pushBuffer appends a record stamped with now; false when full
func (b *Building) pushBuffer(item int, now float64) bool {
	if b.index >= len(b.buffer) {
		return false
	}
	b.buffer[b.index] = transit.Pack(uint16(item), float32(now))
	b.index++
	return true
}

// pollBuffer returns the head item once it has crossed, without removing it
func (b *Building) pollBuffer(now float64) (int, bool) {
	if b.index == 0 {
		return 0, false
	}
	return headReady(b.buffer[0], now, b.Speed/b.TimeScale)
}

func (b *Building) popBuffer() {
	copy(b.buffer, b.buffer[1:b.index])
	b.index--
}

func (b *Building) pushLane(lane, item int, now float64) bool {
	if b.laneIdx[lane] >= len(b.lanes[lane]) {
		return false
	}
	b.lanes[lane][b.laneIdx[lane]] = transit.Pack(uint16(item), float32(now))
	b.laneIdx[lane]++
	return true
}

func (b *Building) pollLane(lane int, now float64) (int, bool) {
	if b.laneIdx[lane] == 0 {
		return 0, false
	}
	return headReady(b.lanes[lane][0], now, b.Speed/b.TimeScale)
}

func (b *Building) popLane(lane int) {
	n := b.laneIdx[lane]
	copy(b.lanes[lane], b.lanes[lane][1:n])
	b.laneIdx[lane]--
}

// headReady reports whether a record has spent delay ticks in its buffer
// A record stamped in the future (clock reset) is released immediately
func headReady(rec uint64, now, delay float64) (int, bool) {
	at := float64(transit.Time(rec))
	if now >= at+delay || now < at {
		return int(transit.Item(rec)), true
	}
	return 0, false
}
