package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bareStore keeps a single arrangement and cannot list.
type bareStore struct {
	machines []string
}

func (s *bareStore) Save(_ context.Context, _ string, machines []string) error {
	s.machines = machines
	return nil
}

func (s *bareStore) Load(_ context.Context, name string) ([]string, error) {
	if s.machines == nil {
		return nil, &domain.MissingManifestError{Path: name}
	}
	return s.machines, nil
}

func (s *bareStore) Delete(_ context.Context, _ string) error {
	s.machines = nil
	return nil
}

func TestLoggingMiddleware_Contract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger))
	ports.RunArrangementStoreContract(t, store, func(s string) string { return s })
}

func TestLoggingMiddleware_Records(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "pair", []string{"A", "B"}))
	assert.Contains(t, buf.String(), "op=save")
	assert.Contains(t, buf.String(), "arrangement=pair")
	assert.Contains(t, buf.String(), "machines=2")

	buf.Reset()
	_, err := store.Load(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrMissingManifest)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "op=load")
}

func TestReadOnlyMiddleware(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	require.NoError(t, inner.Save(ctx, "pair", []string{"A", "B"}))

	store := middleware.NewReadOnlyMiddleware()(inner)

	loaded, err := store.Load(ctx, "pair")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, loaded)

	assert.ErrorIs(t, store.Save(ctx, "pair", []string{"C"}), middleware.ErrReadOnly)
	assert.ErrorIs(t, store.Delete(ctx, "pair"), middleware.ErrReadOnly)

	loaded, err = inner.Load(ctx, "pair")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, loaded, "writes never reach the wrapped store")

	names, err := store.(ports.ArrangementLister).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pair"}, names)
}

func TestChain(t *testing.T) {
	inner := &bareStore{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	store := middleware.Chain(inner,
		middleware.NewReadOnlyMiddleware(),
		middleware.NewLoggingMiddleware(logger),
	)
	assert.Same(t, inner, middleware.Unwrap(store))
	assert.ErrorIs(t, store.Save(context.Background(), "x", []string{"A"}), middleware.ErrReadOnly)

	_, err := store.(ports.ArrangementLister).List(context.Background())
	assert.ErrorIs(t, err, ports.ErrListUnsupported)

	assert.Same(t, inner, middleware.Unwrap(inner))
	assert.Same(t, inner, middleware.Chain(inner))
}
