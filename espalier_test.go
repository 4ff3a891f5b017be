package espalier_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEspalier_Export(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteCBundle(t, dir, testutils.CounterSpec("CounterC"))

	e, err := espalier.New(dir, espalier.WithCacheTTL(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "cxx"}, e.Formats())

	res, err := e.Export(context.Background(), "CounterC", "c")
	require.NoError(t, err)
	assert.Equal(t, "CounterC", res.Machine.Name)
	assert.Equal(t, filepath.Join(dir, "CounterC.machine"), res.Location)
	assert.True(t, res.Machine.IsSuspensible())

	_, err = e.Export(context.Background(), "CounterC", "java")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
}

func TestEspalier_Discover(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("M10"))
	testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("M2"))

	e, err := espalier.New(dir)
	require.NoError(t, err)

	found, err := e.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"M2", "M10"}, found)
}

func TestEspalier_FileArrangement(t *testing.T) {
	dir := t.TempDir()
	arrDir := filepath.Join(dir, "Pair.arrangement")
	testutils.WriteCXXBundle(t, arrDir, testutils.ScenarioSpec("Ping"))
	testutils.WriteCXXBundle(t, dir, testutils.ScenarioSpec("Pong"))
	require.NoError(t, arrangement.Save(arrDir, []string{"Ping", "../Pong"}))

	e, err := espalier.New(dir)
	require.NoError(t, err)

	results, err := e.ExportArrangement(context.Background(), "Pair.arrangement", "cxx")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Ping", results[0].Machine.Name)
	assert.Equal(t, "Pong", results[1].Machine.Name)

	_, err = e.ExportArrangement(context.Background(), "Nope.arrangement", "cxx")
	assert.ErrorIs(t, err, domain.ErrMissingManifest)
}

func TestEspalier_RedisArrangement(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.New(mr.Addr(), "", 0)
	t.Cleanup(func() { store.Close() })

	dir := t.TempDir()
	testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("A"))
	testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("B"))

	e, err := espalier.New(dir, espalier.WithStore(store), espalier.WithWorkers(1))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, e.Store().Save(ctx, "pair", []string{"B", "A"}))

	locations, err := e.Machines(ctx, "pair")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "B.machine"),
		filepath.Join(dir, "A.machine"),
	}, locations)

	results, err := e.ExportArrangement(ctx, "pair", "c")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "B", results[0].Machine.Name)

	_, err = e.ExportArrangement(ctx, "pair", "swift")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
}

func TestEspalier_MemoryArrangement(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("A"))

	e, err := espalier.New(dir, espalier.WithStore(memory.NewStore()), espalier.WithCacheTTL(0))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = e.Machines(ctx, "solo")
	assert.ErrorIs(t, err, domain.ErrMissingManifest)

	require.NoError(t, e.Store().Save(ctx, "solo", []string{"A", "A"}))
	results, err := e.ExportArrangement(ctx, "solo", "c")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Machine.Name, results[1].Machine.Name)
}
