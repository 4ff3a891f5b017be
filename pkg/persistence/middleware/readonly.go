package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/espalier/pkg/ports"
)

// ErrReadOnly is returned by Save and Delete of a read-only store.
var ErrReadOnly = errors.New("arrangement store is read-only")

type readOnlyMiddleware struct {
	next ports.ArrangementStore
}

// NewReadOnlyMiddleware rejects every write and forwards reads.
func NewReadOnlyMiddleware() Middleware {
	return func(next ports.ArrangementStore) ports.ArrangementStore {
		return &readOnlyMiddleware{next: next}
	}
}

func (m *readOnlyMiddleware) Save(_ context.Context, name string, _ []string) error {
	return fmt.Errorf("save %s: %w", name, ErrReadOnly)
}

func (m *readOnlyMiddleware) Load(ctx context.Context, name string) ([]string, error) {
	return m.next.Load(ctx, name)
}

func (m *readOnlyMiddleware) Delete(_ context.Context, name string) error {
	return fmt.Errorf("delete %s: %w", name, ErrReadOnly)
}

func (m *readOnlyMiddleware) List(ctx context.Context) ([]string, error) {
	return list(ctx, m.next)
}

func (m *readOnlyMiddleware) Unwrap() ports.ArrangementStore {
	return m.next
}
