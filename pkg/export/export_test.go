package export_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/adapters/cache"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/export"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writer func(t *testing.T, dir string, spec testutils.MachineSpec) string

var layouts = map[string]writer{
	"c":   testutils.WriteCBundle,
	"cxx": testutils.WriteCXXBundle,
}

func TestExport_Scenario(t *testing.T) {
	for format, write := range layouts {
		t.Run(format, func(t *testing.T) {
			location := write(t, t.TempDir(), testutils.ScenarioSpec("Scenario"))

			res, err := export.New(nil).Export(context.Background(), location, format)
			require.NoError(t, err)

			m := res.Machine
			assert.Equal(t, "Scenario", m.Name)
			assert.Equal(t, format, res.Format)
			assert.Equal(t, []domain.Transition{
				{Source: 0, Target: domain.Ref(1), Expression: "g"},
			}, m.Transitions())
			assert.Empty(t, m.TransitionsFrom(1))
			assert.False(t, m.IsSuspensible())
			assert.Equal(t, "S0\nS1\n"+domain.NotSuspensible, m.String())
		})
	}
}

func TestExport_Counter(t *testing.T) {
	for format, write := range layouts {
		t.Run(format, func(t *testing.T) {
			location := write(t, t.TempDir(), testutils.CounterSpec("Counter"))

			res, err := export.New(nil).Export(context.Background(), location, format)
			require.NoError(t, err)

			m := res.Machine
			countUp, ok := m.Lookup("CountUp").Get()
			require.True(t, ok)
			fromCountUp := m.TransitionsFrom(countUp)
			require.Len(t, fromCountUp, 2)
			assert.Equal(t, "count >= 10", fromCountUp[0].Expression)
			assert.Equal(t, m.Lookup("Print"), fromCountUp[0].Target)
			assert.False(t, fromCountUp[1].Target.IsSet())

			assert.Equal(t, m.Lookup("SUSPENDED"), m.SuspendState())
			assert.Equal(t, "count++;\n", res.StateBoilerplate["CountUp"].Section(domain.SectionOnEntry))

			doc := res.Document()
			assert.Equal(t, "SUSPENDED", doc.Suspend)
			assert.Len(t, doc.States, 5)
		})
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	location := testutils.WriteCBundle(t, t.TempDir(), testutils.ScenarioSpec("Scenario"))

	res, err := export.New(nil).Export(context.Background(), location, "swift")
	assert.Nil(t, res)
	require.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)

	var unsupported *domain.UnsupportedOutputFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "swift", unsupported.Format)
}

func TestExport_UnsupportedFormatBeforeBundle(t *testing.T) {
	_, err := export.New(nil).Export(context.Background(), filepath.Join(t.TempDir(), "Nope.machine"), "swift")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
}

func TestExport_MissingBundle(t *testing.T) {
	_, err := export.New(nil).Export(context.Background(), filepath.Join(t.TempDir(), "Nope.machine"), "c")
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
}

func TestExport_Deterministic(t *testing.T) {
	location := testutils.WriteCXXBundle(t, t.TempDir(), testutils.CounterSpec("Counter"))
	e := export.New(registry.Default().Map(cache.Wrap(0)))

	first, err := e.Export(context.Background(), location, "cxx")
	require.NoError(t, err)
	second, err := e.Export(context.Background(), location, "cxx")
	require.NoError(t, err)

	assert.Equal(t, first.Document(), second.Document())
}

func TestExport_Metrics(t *testing.T) {
	location := testutils.WriteCBundle(t, t.TempDir(), testutils.ScenarioSpec("Scenario"))
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	e := export.New(nil, export.WithMetrics(metrics))
	_, err = e.Export(context.Background(), location, "c")
	require.NoError(t, err)
	_, err = e.Export(context.Background(), filepath.Join(t.TempDir(), "Nope.machine"), "c")
	require.Error(t, err)

	exports := metrics.Collectors()[0]
	assert.Equal(t, 2, testutil.CollectAndCount(exports))
	queries := metrics.Collectors()[2]
	// transitions, expression, target, suspend, boilerplate, state_boilerplate
	assert.Equal(t, 6, testutil.CollectAndCount(queries))
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	names := []string{"M1", "M2", "M3", "M4", "M5", "M6"}
	locations := make([]string, len(names))
	for i, name := range names {
		locations[i] = testutils.WriteCBundle(t, dir, testutils.ScenarioSpec(name))
	}

	results, err := export.New(nil, export.WithWorkers(2)).ExportAll(context.Background(), locations, "c")
	require.NoError(t, err)
	require.Len(t, results, len(names))
	for i, res := range results {
		assert.Equal(t, names[i], res.Machine.Name)
		assert.Equal(t, locations[i], res.Location)
	}
}

func TestExportAll_Errors(t *testing.T) {
	dir := t.TempDir()
	good := testutils.WriteCBundle(t, dir, testutils.ScenarioSpec("Good"))

	t.Run("Unsupported Format", func(t *testing.T) {
		_, err := export.New(nil).ExportAll(context.Background(), []string{good}, "swift")
		assert.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
	})

	t.Run("Missing Bundle", func(t *testing.T) {
		_, err := export.New(nil).ExportAll(context.Background(), []string{good, filepath.Join(dir, "Bad.machine")}, "c")
		assert.ErrorIs(t, err, domain.ErrInvalidBundle)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := export.New(nil).ExportAll(ctx, []string{good}, "c")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Empty", func(t *testing.T) {
		results, err := export.New(nil).ExportAll(context.Background(), nil, "c")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
