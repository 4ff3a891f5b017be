// Package middleware decorates arrangement stores with cross-cutting behavior.
package middleware

import (
	"context"

	"github.com/aretw0/espalier/pkg/ports"
)

// Middleware allows wrapping an ArrangementStore to add behavior.
type Middleware func(ports.ArrangementStore) ports.ArrangementStore

// Chain applies mws to store. The first middleware is the outermost.
func Chain(store ports.ArrangementStore, mws ...Middleware) ports.ArrangementStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// Unwrap returns the innermost store below every middleware.
func Unwrap(store ports.ArrangementStore) ports.ArrangementStore {
	for {
		w, ok := store.(interface{ Unwrap() ports.ArrangementStore })
		if !ok {
			return store
		}
		store = w.Unwrap()
	}
}

// list forwards to next when it can enumerate its arrangements.
func list(ctx context.Context, next ports.ArrangementStore) ([]string, error) {
	lister, ok := next.(ports.ArrangementLister)
	if !ok {
		return nil, ports.ErrListUnsupported
	}
	return lister.List(ctx)
}
