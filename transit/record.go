// Package transit decodes packed transit buffers into typed snapshots and
// interpolates in-flight item positions along a structure's travel path.
package transit

import "math"

// Record layout (uint64):
//
//	bits  0..15  item id (catalog index)
//	bits 16..47  arrival time, float32 bits, simulation ticks
//	bits 48..63  zero
const (
	itemMask  = 0xFFFF
	timeShift = 16
	timeMask  = 0xFFFFFFFF
)

// Pack encodes an item id and arrival time into a record
func Pack(item uint16, arrival float32) uint64 {
	return uint64(item)&itemMask | (uint64(math.Float32bits(arrival))&timeMask)<<timeShift
}

// Item extracts the item id of a record
func Item(rec uint64) uint16 {
	return uint16(rec & itemMask)
}

// Time extracts the arrival time of a record
func Time(rec uint64) float32 {
	return math.Float32frombits(uint32((rec >> timeShift) & timeMask))
}
