package transit

import (
	"errors"
	"math"
	"testing"
)

func TestPackRoundTrip(t *testing.T) {
	rec := Pack(37, 1234.5)
	if Item(rec) != 37 {
		t.Errorf("Expected item 37, got %d", Item(rec))
	}
	if Time(rec) != 1234.5 {
		t.Errorf("Expected time 1234.5, got %v", Time(rec))
	}
	if rec>>48 != 0 {
		t.Errorf("Expected high 16 bits clear, got %#x", rec)
	}

	// Layout is fixed: item in the low 16 bits, float32 bits above
	want := uint64(math.Float32bits(2)) << 16
	if got := Pack(0, 2); got != want {
		t.Errorf("Pack(0, 2) = %#x, want %#x", got, want)
	}
}

func linear(cap int, recs ...uint64) Buffer {
	buf := make([]uint64, cap)
	copy(buf, recs)
	return Buffer{Records: buf, Index: len(recs)}
}

func TestDecodeLinear(t *testing.T) {
	s := NewScratch(2)
	buf := linear(4, Pack(1, 10), Pack(2, 11), Pack(0, 12))

	snap, err := s.DecodeLinear(buf, 4, 3)
	if err != nil {
		t.Fatalf("DecodeLinear: %v", err)
	}
	if len(snap.Entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(snap.Entries))
	}
	if snap.Filled != 3 {
		t.Errorf("Expected 3 filled, got %d", snap.Filled)
	}
	want := []Entry{{1, 10, true}, {2, 11, true}, {0, 12, true}, {}}
	for i, e := range snap.Entries {
		if e != want[i] {
			t.Errorf("slot %d: got %+v, want %+v", i, e, want[i])
		}
	}
	if s.Cap() < 4 {
		t.Errorf("Expected scratch to grow to at least 4, got %d", s.Cap())
	}
}

func TestDecodeLinearIgnoresRecordsPastWriteIndex(t *testing.T) {
	s := NewScratch(0)
	buf := linear(4, Pack(1, 1), Pack(1, 2), Pack(1, 3))
	buf.Index = 1 // stale records remain in the backing array after a poll

	snap, err := s.DecodeLinear(buf, 4, 2)
	if err != nil {
		t.Fatalf("DecodeLinear: %v", err)
	}
	if snap.Filled != 1 || snap.Entries[1].Set || snap.Entries[2].Set {
		t.Errorf("Expected only slot 0 set, got %+v", snap.Entries)
	}
}

func TestDecodeLinearClearsStaleScratch(t *testing.T) {
	s := NewScratch(0)
	if _, err := s.DecodeLinear(linear(4, Pack(1, 1), Pack(1, 2), Pack(1, 3), Pack(1, 4)), 4, 2); err != nil {
		t.Fatalf("first decode: %v", err)
	}
	snap, err := s.DecodeLinear(linear(4), 4, 2)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !snap.Empty() {
		t.Fatalf("Expected empty snapshot")
	}
	for i, e := range snap.Entries {
		if e.Set {
			t.Errorf("slot %d leaked from previous decode: %+v", i, e)
		}
	}
}

func TestDecodeLinearIdempotent(t *testing.T) {
	s := NewScratch(0)
	buf := linear(6, Pack(3, 0.5), Pack(1, 7), Pack(4, 9.25))

	first, err := s.DecodeLinear(buf, 6, 5)
	if err != nil {
		t.Fatalf("DecodeLinear: %v", err)
	}
	saved := append([]Entry(nil), first.Entries...)

	second, err := s.DecodeLinear(buf, 6, 5)
	if err != nil {
		t.Fatalf("DecodeLinear: %v", err)
	}
	if second.Filled != first.Filled {
		t.Fatalf("Filled differs: %d vs %d", first.Filled, second.Filled)
	}
	for i := range saved {
		if saved[i] != second.Entries[i] {
			t.Errorf("slot %d differs: %+v vs %+v", i, saved[i], second.Entries[i])
		}
	}
}

func TestDecodeLinearOutOfRangeItem(t *testing.T) {
	s := NewScratch(0)
	buf := linear(4, Pack(1, 1), Pack(99, 2), Pack(98, 3))

	snap, err := s.DecodeLinear(buf, 4, 5)
	var die *DecodeInvariantError
	if !errors.As(err, &die) {
		t.Fatalf("Expected *DecodeInvariantError, got %v", err)
	}
	if !errors.Is(err, ErrDecodeInvariant) {
		t.Errorf("Expected error to wrap ErrDecodeInvariant")
	}
	if die.Slot != 1 || die.Item != 99 || die.Count != 2 {
		t.Errorf("Unexpected error detail: %+v", die)
	}
	if snap.Filled != 1 || !snap.Entries[0].Set || snap.Entries[1].Set || snap.Entries[2].Set {
		t.Errorf("Expected offending slots unset, got %+v", snap.Entries)
	}
}

func TestDecodeLinearBadWriteIndex(t *testing.T) {
	s := NewScratch(0)
	buf := Buffer{Records: make([]uint64, 2), Index: 5}
	snap, err := s.DecodeLinear(buf, 2, 1)
	if !errors.Is(err, ErrDecodeInvariant) {
		t.Fatalf("Expected decode invariant error, got %v", err)
	}
	if !snap.Empty() {
		t.Errorf("Expected empty snapshot on structural fault")
	}

	buf.Index = -1
	if _, err := s.DecodeLinear(buf, 2, 1); !errors.Is(err, ErrDecodeInvariant) {
		t.Errorf("Expected error for negative index, got %v", err)
	}
}

func TestDecodeLinearCapacityBelowBuffer(t *testing.T) {
	s := NewScratch(0)
	snap, err := s.DecodeLinear(linear(4, Pack(0, 1), Pack(0, 2), Pack(0, 3)), 2, 1)
	if err != nil {
		t.Fatalf("DecodeLinear: %v", err)
	}
	if len(snap.Entries) != 2 || snap.Filled != 2 {
		t.Errorf("Expected 2 entries both set, got %+v", snap)
	}
}

func TestDecodeLanes(t *testing.T) {
	s := NewScratch(0)
	buf := LaneBuffer{
		Records: [][]uint64{
			{Pack(1, 5), Pack(2, 6)},
			{0, 0},
			{Pack(0, 8), 0},
			{0, 0},
		},
		Indexes: []int{2, 0, 1, 0},
	}

	snap, err := s.DecodeLanes(buf, 2, 3)
	if err != nil {
		t.Fatalf("DecodeLanes: %v", err)
	}
	if len(snap.Entries) != 8 {
		t.Fatalf("Expected 8 entries, got %d", len(snap.Entries))
	}
	if snap.Filled != 3 {
		t.Errorf("Expected 3 filled, got %d", snap.Filled)
	}
	if snap.Lanes() != 4 {
		t.Errorf("Expected 4 lanes, got %d", snap.Lanes())
	}
	wantFilled := []int{2, 0, 1, 0}
	for i, w := range wantFilled {
		if got := snap.LaneFilled(i); got != w {
			t.Errorf("lane %d filled = %d, want %d", i, got, w)
		}
	}
	if e := snap.Lane(2)[0]; e != (Entry{0, 8, true}) {
		t.Errorf("lane 2 slot 0 = %+v", e)
	}
	if e := snap.Entries[2*2+0]; !e.Set {
		t.Errorf("Expected lane-major indexing, got %+v", e)
	}
}

func TestDecodeLanesMismatchedIndexes(t *testing.T) {
	s := NewScratch(0)
	_, err := s.DecodeLanes(LaneBuffer{Records: make([][]uint64, 4), Indexes: []int{0, 0}}, 2, 1)
	if !errors.Is(err, ErrDecodeInvariant) {
		t.Errorf("Expected decode invariant error, got %v", err)
	}
}

func TestDecodeLanesEmpty(t *testing.T) {
	s := NewScratch(0)
	buf := LaneBuffer{
		Records: [][]uint64{{Pack(1, 1)}, {Pack(1, 1)}, {0}, {0}},
		Indexes: []int{0, 0, 0, 0},
	}
	if !buf.Empty() {
		t.Fatalf("Expected buffer to report empty")
	}
	snap, err := s.DecodeLanes(buf, 1, 2)
	if err != nil {
		t.Fatalf("DecodeLanes: %v", err)
	}
	if !snap.Empty() {
		t.Errorf("Expected empty snapshot, got %+v", snap)
	}
}
