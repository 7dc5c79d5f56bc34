package grid

import (
	"context"
	"errors"
)

// ErrNoStore is the panic value of FromContext when no store was attached.
var ErrNoStore = errors.New("grid: no store in context (attach one with grid.WithStore)")

type storeKey struct{}

// WithStore attaches a store to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store attached to ctx. Calling it on a context
// without one is a programming error and panics with ErrNoStore.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		panic(ErrNoStore)
	}
	return s
}
