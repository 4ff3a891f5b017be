package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunArrangementStoreContract(t, memory.NewStore(), func(s string) string { return s })
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Save(ctx, "b", []string{"X"}))
	require.NoError(t, store.Save(ctx, "a", nil))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete(ctx, "a"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestMemoryStore_CopiesSlices(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	machines := []string{"A", "B"}
	require.NoError(t, store.Save(ctx, "arr", machines))
	machines[0] = "Z"

	loaded, err := store.Load(ctx, "arr")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, loaded)

	loaded[1] = "Y"
	again, err := store.Load(ctx, "arr")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, again)
}

func TestMemoryStore_Missing(t *testing.T) {
	_, err := memory.NewStore().Load(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingManifest)

	var missing *domain.MissingManifestError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost", missing.Path)
}

func TestMemoryStore_BlankNameRejected(t *testing.T) {
	store := memory.NewStore()
	err := store.Save(context.Background(), "arr", []string{"A", "  "})

	var invalid *arrangement.InvalidNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)
}
