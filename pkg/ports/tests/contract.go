package tests

import (
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExpectedTransition describes one transition a fixture bundle must report.
type ExpectedTransition struct {
	Expression string
	Target     string // empty when the target must not resolve
}

// BindingFixture describes the facts a binding must re-derive from a bundle.
type BindingFixture struct {
	Location    string
	States      []domain.State
	Transitions map[string][]ExpectedTransition
	Suspend     string // empty when the machine is not suspensible
}

// LanguageBindingContractTest is a reusable test suite that verifies if an adapter
// complies with ports.LanguageBinding for the given fixture.
func LanguageBindingContractTest(t *testing.T, binding ports.LanguageBinding, fx BindingFixture) {
	t.Helper()

	t.Run("Format", func(t *testing.T) {
		assert.NotEmpty(t, binding.Format())
	})

	t.Run("Transitions", func(t *testing.T) {
		for _, s := range fx.States {
			want := fx.Transitions[s.Name]

			count, err := binding.NumberOfTransitions(fx.Location, s.Name)
			require.NoError(t, err, "state %s", s.Name)
			require.Equal(t, len(want), count, "transition count of %s", s.Name)

			for i, exp := range want {
				expr, err := binding.ExpressionOfTransition(fx.Location, s.Name, i)
				require.NoError(t, err)
				assert.Equal(t, exp.Expression, expr, "expression %s[%d]", s.Name, i)

				target, err := binding.TargetOfTransition(fx.Location, fx.States, s.Name, i)
				require.NoError(t, err)
				if exp.Target == "" {
					assert.False(t, target.IsSet(), "target %s[%d] should not resolve", s.Name, i)
				} else {
					assert.Equal(t, domain.Lookup(fx.States, exp.Target), target, "target %s[%d]", s.Name, i)
				}
			}
		}
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		for _, s := range fx.States {
			count, err := binding.NumberOfTransitions(fx.Location, s.Name)
			require.NoError(t, err)

			_, err = binding.ExpressionOfTransition(fx.Location, s.Name, count)
			assert.ErrorIs(t, err, domain.ErrTransitionOutOfRange)

			_, err = binding.TargetOfTransition(fx.Location, fx.States, s.Name, -1)
			assert.ErrorIs(t, err, domain.ErrTransitionOutOfRange)
		}
	})

	t.Run("Suspend State", func(t *testing.T) {
		ref, err := binding.SuspendState(fx.Location, fx.States)
		require.NoError(t, err)
		if fx.Suspend == "" {
			assert.False(t, ref.IsSet())
		} else {
			assert.Equal(t, domain.Lookup(fx.States, fx.Suspend), ref)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := binding.Boilerplate(fx.Location)
		require.NoError(t, err)
		second, err := binding.Boilerplate(fx.Location)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		for _, s := range fx.States {
			a, err := binding.StateBoilerplate(fx.Location, s.Name)
			require.NoError(t, err)
			b, err := binding.StateBoilerplate(fx.Location, s.Name)
			require.NoError(t, err)
			assert.Equal(t, a, b)

			n1, _ := binding.NumberOfTransitions(fx.Location, s.Name)
			n2, _ := binding.NumberOfTransitions(fx.Location, s.Name)
			assert.Equal(t, n1, n2)
			for i := 0; i < n1; i++ {
				t1, _ := binding.TargetOfTransition(fx.Location, fx.States, s.Name, i)
				t2, _ := binding.TargetOfTransition(fx.Location, fx.States, s.Name, i)
				assert.Equal(t, t1, t2)
			}
		}
	})
}
