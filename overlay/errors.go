package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleReference marks an indexed position whose structure no longer exists
	ErrStaleReference = errors.New("overlay: stale structure reference")
	// ErrMissingAccessor marks a collaborator missing at initialization
	ErrMissingAccessor = errors.New("overlay: missing accessor")
	// ErrMalformedStructure marks a structure whose payload does not match its kind
	ErrMalformedStructure = errors.New("overlay: payload does not match kind")
)

// MissingAccessorError names the absent collaborator
type MissingAccessorError struct {
	Name string
}

func (e *MissingAccessorError) Error() string {
	return fmt.Sprintf("overlay: missing accessor %s", e.Name)
}

func (e *MissingAccessorError) Unwrap() error { return ErrMissingAccessor }
