package ports

import (
	"context"
	"errors"
)

// ArrangementStore persists the ordered list of machine names of an arrangement.
// Order is significant; names are neither deduplicated nor sorted.
type ArrangementStore interface {
	// Save replaces the machine list of the arrangement.
	Save(ctx context.Context, arrangement string, machines []string) error

	// Load retrieves the machine list of the arrangement.
	// Returns an error wrapping domain.ErrMissingManifest if the arrangement does not exist.
	// An existing arrangement with no machines yields an empty, non-nil slice.
	Load(ctx context.Context, arrangement string) ([]string, error)

	// Delete removes the arrangement. Deleting a missing arrangement is not an error.
	Delete(ctx context.Context, arrangement string) error
}

// ArrangementLister is implemented by stores that can enumerate their arrangements.
type ArrangementLister interface {
	List(ctx context.Context) ([]string, error)
}

// ErrListUnsupported is returned when the configured store cannot enumerate arrangements.
var ErrListUnsupported = errors.New("arrangement store cannot list arrangements")
