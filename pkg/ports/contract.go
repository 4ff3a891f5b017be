package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArrangementStoreContract runs a suite of tests to verify that an ArrangementStore
// implementation adheres to the defined interface contract.
// newName must return an arrangement identifier that does not exist yet.
func RunArrangementStoreContract(t *testing.T, store ArrangementStore, newName func(suffix string) string) {
	t.Helper()
	ctx := context.Background()
	stamp := time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		name := newName("round-trip-" + stamp)
		require.NoError(t, store.Save(ctx, name, []string{"A", "B", "C"}))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, loaded)
	})

	t.Run("Order And Duplicates Preserved", func(t *testing.T) {
		name := newName("order-" + stamp)
		machines := []string{"Zeta", "Alpha", "Zeta", "Beta"}
		require.NoError(t, store.Save(ctx, name, machines))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, machines, loaded)
	})

	t.Run("Empty Arrangement", func(t *testing.T) {
		name := newName("empty-" + stamp)
		require.NoError(t, store.Save(ctx, name, nil))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "an existing empty manifest is not an error")
		assert.NotNil(t, loaded)
		assert.Empty(t, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, newName("missing-"+stamp))
		assert.ErrorIs(t, err, domain.ErrMissingManifest)
	})

	t.Run("Overwrite", func(t *testing.T) {
		name := newName("overwrite-" + stamp)
		require.NoError(t, store.Save(ctx, name, []string{"A", "B"}))
		require.NoError(t, store.Save(ctx, name, []string{"C"}))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, loaded)
	})

	t.Run("Delete", func(t *testing.T) {
		name := newName("delete-" + stamp)
		require.NoError(t, store.Save(ctx, name, []string{"A"}))
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrMissingManifest, "Load after Delete should return ErrMissingManifest")

		assert.NoError(t, store.Delete(ctx, name), "Delete is idempotent")
	})
}
