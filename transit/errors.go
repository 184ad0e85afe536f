package transit

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodeInvariant marks a buffer whose contents violate the record invariants
	ErrDecodeInvariant = errors.New("transit: decode invariant violated")
	// ErrInvalidTransit marks unusable interpolation parameters
	ErrInvalidTransit = errors.New("transit: invalid transit parameters")
)

// DecodeInvariantError describes the first offending slot of a decode
// Offending slots are left unset; the snapshot remains usable
type DecodeInvariantError struct {
	Slot   int    // snapshot index of the first offending slot, -1 for structural faults
	Item   int    // decoded item id at Slot
	Count  int    // total offending slots
	Reason string // structural fault description, empty for item range faults
}

func (e *DecodeInvariantError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("transit: decode invariant violated: %s", e.Reason)
	}
	return fmt.Sprintf("transit: decode invariant violated: item %d out of range at slot %d (%d slots)", e.Item, e.Slot, e.Count)
}

func (e *DecodeInvariantError) Unwrap() error { return ErrDecodeInvariant }
