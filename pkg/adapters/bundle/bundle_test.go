package bundle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/adapters/bundle"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	location := testutils.WriteBundle(t, dir, "Counter", map[string]string{"States": "A\nB\n"})

	bd, err := bundle.Open(location)
	require.NoError(t, err)
	assert.Equal(t, "Counter", bd.Name())
	assert.Equal(t, location, bd.Path())

	_, err = bundle.Open(filepath.Join(dir, "Missing.machine"))
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = bundle.Open(file)
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
}

func TestReadStates(t *testing.T) {
	location := testutils.WriteBundle(t, t.TempDir(), "M", map[string]string{"States": "Initial\nCountUp\r\n\n"})
	bd, err := bundle.Open(location)
	require.NoError(t, err)

	states, err := bd.ReadStates()
	require.NoError(t, err)
	assert.Equal(t, []domain.State{{Name: "Initial"}, {Name: "CountUp"}}, states)

	empty := testutils.WriteBundle(t, t.TempDir(), "Empty", map[string]string{})
	bd, err = bundle.Open(empty)
	require.NoError(t, err)
	_, err = bd.ReadStates()
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
}

func TestExpressionFiles_NaturalOrder(t *testing.T) {
	files := map[string]string{}
	for _, i := range []string{"0", "1", "2", "10", "11"} {
		files["State_S_Transition_"+i+".expr"] = "true"
	}
	location := testutils.WriteBundle(t, t.TempDir(), "M", files)
	bd, err := bundle.Open(location)
	require.NoError(t, err)

	got, err := bd.ExpressionFiles("S")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"State_S_Transition_0.expr",
		"State_S_Transition_1.expr",
		"State_S_Transition_2.expr",
		"State_S_Transition_10.expr",
		"State_S_Transition_11.expr",
	}, got)

	expr, err := bd.Expression("S", 10)
	require.NoError(t, err)
	assert.Equal(t, "true", expr)
}

func TestSections(t *testing.T) {
	location := testutils.WriteBundle(t, t.TempDir(), "M", map[string]string{"M_Variables.h": "int x;\n"})
	bd, err := bundle.Open(location)
	require.NoError(t, err)

	b, err := bd.Sections(map[string]string{
		domain.SectionVariables: "M_Variables.h",
		domain.SectionMethods:   "M_Methods.h",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Boilerplate{domain.SectionVariables: "int x;\n", domain.SectionMethods: ""}, b)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"Machine10", "Machine2", "Alpha"} {
		testutils.WriteBundle(t, dir, n, nil)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Counters.arrangement"), 0755))

	names, err := bundle.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Machine2", "Machine10"}, names)
}

func TestMachineLocation(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "Counter.machine"), bundle.MachineLocation("base", "Counter"))
	assert.Equal(t, filepath.Join("base", "Counter.machine"), bundle.MachineLocation("base", "Counter.machine"))
	assert.Equal(t, "/abs/Counter.machine", bundle.MachineLocation("base", "/abs/Counter"))
	assert.Equal(t, "Counter", bundle.MachineName("/x/y/Counter.machine/"))
}
