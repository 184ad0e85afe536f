package transit

import "fmt"

// Entry is one decoded buffer slot
type Entry struct {
	Item int     // catalog index, valid only when Set
	Time float64 // arrival time in simulation ticks
	Set  bool
}

// Snapshot is a decoded view of a transit buffer, indexed by slot
// For lane buffers, slot j of lane i is at Entries[i*LaneCapacity+j]
// Entries alias the Scratch that produced them and are valid until its next decode
type Snapshot struct {
	Entries      []Entry
	Filled       int
	LaneCapacity int
	laneFilled   []int
}

// Empty reports whether no slot holds an item
func (s Snapshot) Empty() bool { return s.Filled == 0 }

// Lanes returns the lane count, 1 for linear snapshots
func (s Snapshot) Lanes() int {
	if len(s.laneFilled) == 0 {
		return 1
	}
	return len(s.laneFilled)
}

// Lane returns the entries of lane i
func (s Snapshot) Lane(i int) []Entry {
	if s.LaneCapacity <= 0 {
		return s.Entries
	}
	lo := i * s.LaneCapacity
	if lo < 0 || lo+s.LaneCapacity > len(s.Entries) {
		return nil
	}
	return s.Entries[lo : lo+s.LaneCapacity]
}

// LaneFilled returns the number of set entries in lane i
func (s Snapshot) LaneFilled(i int) int {
	if len(s.laneFilled) == 0 {
		if i == 0 {
			return s.Filled
		}
		return 0
	}
	if i < 0 || i >= len(s.laneFilled) {
		return 0
	}
	return s.laneFilled[i]
}

// Scratch is the decode arena backing snapshots
// Capacity only grows; every decode clears the range it hands out
// Not safe for concurrent use: each render goroutine needs its own Scratch
type Scratch struct {
	entries []Entry
	lanes   []int
}

// NewScratch creates an arena pre-sized for capacity slots
func NewScratch(capacity int) *Scratch {
	s := &Scratch{}
	s.ensure(capacity)
	return s
}

// Cap returns the current arena size in slots
func (s *Scratch) Cap() int { return len(s.entries) }

func (s *Scratch) ensure(n int) {
	if n <= len(s.entries) {
		return
	}
	grown := make([]Entry, max(n, 2*len(s.entries)))
	copy(grown, s.entries)
	s.entries = grown
}

func (s *Scratch) reset(n int) []Entry {
	s.ensure(n)
	out := s.entries[:n]
	clear(out)
	return out
}

// DecodeLinear decodes the live records of a linear buffer into a snapshot of capacity slots
// Records past the write index, or past capacity, are left unset
// Item ids outside [0, itemCount) leave their slot unset and yield a *DecodeInvariantError
// alongside the otherwise valid snapshot
func (s *Scratch) DecodeLinear(buf Buffer, capacity, itemCount int) (Snapshot, error) {
	if capacity < 0 {
		return Snapshot{}, &DecodeInvariantError{Slot: -1, Reason: fmt.Sprintf("negative capacity %d", capacity)}
	}
	entries := s.reset(capacity)
	snap := Snapshot{Entries: entries}

	if buf.Index < 0 || buf.Index > len(buf.Records) {
		return snap, &DecodeInvariantError{
			Slot:   -1,
			Reason: fmt.Sprintf("write index %d outside buffer of %d", buf.Index, len(buf.Records)),
		}
	}

	var bad *DecodeInvariantError
	n := min(buf.Len(), capacity)
	for i := 0; i < n; i++ {
		if decodeInto(&entries[i], buf.Records[i], itemCount) {
			snap.Filled++
			continue
		}
		bad = noteInvalid(bad, i, int(Item(buf.Records[i])))
	}

	if bad != nil {
		return snap, bad
	}
	return snap, nil
}

// DecodeLanes decodes every lane of a lane buffer, each lane sized laneCapacity
func (s *Scratch) DecodeLanes(buf LaneBuffer, laneCapacity, itemCount int) (Snapshot, error) {
	lanes := buf.Lanes()
	if laneCapacity < 0 {
		return Snapshot{}, &DecodeInvariantError{Slot: -1, Reason: fmt.Sprintf("negative lane capacity %d", laneCapacity)}
	}
	if len(buf.Indexes) != lanes {
		return Snapshot{}, &DecodeInvariantError{
			Slot:   -1,
			Reason: fmt.Sprintf("%d lanes but %d write indexes", lanes, len(buf.Indexes)),
		}
	}

	entries := s.reset(lanes * laneCapacity)
	if cap(s.lanes) < lanes {
		s.lanes = make([]int, lanes)
	}
	counts := s.lanes[:lanes]
	clear(counts)

	snap := Snapshot{Entries: entries, LaneCapacity: laneCapacity, laneFilled: counts}

	var bad *DecodeInvariantError
	for lane := 0; lane < lanes; lane++ {
		records := buf.Records[lane]
		if buf.Indexes[lane] < 0 || buf.Indexes[lane] > len(records) {
			bad = &DecodeInvariantError{
				Slot:   -1,
				Reason: fmt.Sprintf("lane %d write index %d outside buffer of %d", lane, buf.Indexes[lane], len(records)),
			}
			continue
		}
		n := min(buf.LaneLen(lane), laneCapacity)
		for j := 0; j < n; j++ {
			idx := lane*laneCapacity + j
			if decodeInto(&entries[idx], records[j], itemCount) {
				counts[lane]++
				snap.Filled++
				continue
			}
			if bad == nil || bad.Reason == "" {
				bad = noteInvalid(bad, idx, int(Item(records[j])))
			}
		}
	}

	if bad != nil {
		return snap, bad
	}
	return snap, nil
}

func decodeInto(e *Entry, rec uint64, itemCount int) bool {
	id := int(Item(rec))
	if id >= itemCount {
		return false
	}
	*e = Entry{Item: id, Time: float64(Time(rec)), Set: true}
	return true
}

func noteInvalid(bad *DecodeInvariantError, slot, item int) *DecodeInvariantError {
	if bad == nil {
		return &DecodeInvariantError{Slot: slot, Item: item, Count: 1}
	}
	bad.Count++
	return bad
}
