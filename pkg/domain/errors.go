package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOutputFormat is returned when no language binding is registered for a format.
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

// ErrMissingManifest is returned when an arrangement has no manifest file.
// An existing manifest with zero lines is a valid, empty arrangement.
var ErrMissingManifest = errors.New("arrangement manifest not found")

// ErrTransitionOutOfRange is returned when a transition index is outside [0, count).
var ErrTransitionOutOfRange = errors.New("transition index out of range")

// ErrStateNotFound is returned when a state name is unknown to a machine bundle.
var ErrStateNotFound = errors.New("state not found")

// ErrInvalidBundle is returned when a location is not a readable machine bundle.
var ErrInvalidBundle = errors.New("invalid machine bundle")

// UnsupportedOutputFormatError reports the format that could not be exported.
type UnsupportedOutputFormatError struct {
	Format string
}

func (e *UnsupportedOutputFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedOutputFormat, e.Format)
}

func (e *UnsupportedOutputFormatError) Unwrap() error {
	return ErrUnsupportedOutputFormat
}

// MissingManifestError reports the manifest path that does not exist.
type MissingManifestError struct {
	Path string
}

func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingManifest, e.Path)
}

func (e *MissingManifestError) Unwrap() error {
	return ErrMissingManifest
}

// TransitionIndexError reports a query made outside the valid index domain.
type TransitionIndexError struct {
	State string
	Index int
	Count int
}

func (e *TransitionIndexError) Error() string {
	return fmt.Sprintf("state %q: %s: %d not in [0, %d)", e.State, ErrTransitionOutOfRange, e.Index, e.Count)
}

func (e *TransitionIndexError) Unwrap() error {
	return ErrTransitionOutOfRange
}

// CheckTransitionIndex returns a *TransitionIndexError unless 0 <= index < count.
func CheckTransitionIndex(state string, index, count int) error {
	if index < 0 || index >= count {
		return &TransitionIndexError{State: state, Index: index, Count: count}
	}
	return nil
}
