package transit

// Buffer is a read-only view of a linear FIFO transit buffer
// Records has the buffer's full capacity; entries [0, Index) are live
type Buffer struct {
	Records []uint64
	Index   int
}

// Len returns the number of live records, bounded by the backing array
func (b Buffer) Len() int {
	return min(max(b.Index, 0), len(b.Records))
}

// LaneBuffer is a read-only view of a multi-lane buffer
// Each lane fills independently; Indexes[i] counts live records in Records[i]
type LaneBuffer struct {
	Records [][]uint64
	Indexes []int
}

// Lanes returns the lane count
func (b LaneBuffer) Lanes() int {
	return len(b.Records)
}

// LaneLen returns the live record count of lane i
func (b LaneBuffer) LaneLen(i int) int {
	if i < 0 || i >= len(b.Records) || i >= len(b.Indexes) {
		return 0
	}
	return min(max(b.Indexes[i], 0), len(b.Records[i]))
}

// Empty reports whether every lane is empty
func (b LaneBuffer) Empty() bool {
	for i := range b.Records {
		if b.LaneLen(i) > 0 {
			return false
		}
	}
	return true
}
