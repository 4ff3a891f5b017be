package dsl

import (
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	m, err := New("Counter").
		State("Initial").Go("CountUp").
		State("CountUp").Branch("count >= 10", "Print").Branch("after(5)", "Nowhere").
		State("Print").
		State("SUSPENDED").
		Suspend("SUSPENDED").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Counter", m.Name)
	assert.Equal(t, []domain.State{
		domain.NewState("Initial"),
		domain.NewState("CountUp"),
		domain.NewState("Print"),
		domain.NewState("SUSPENDED"),
	}, m.States())

	initial, ok := m.InitialState()
	require.True(t, ok)
	assert.Equal(t, "Initial", initial.Name)

	assert.Equal(t, []domain.Transition{
		{Source: 0, Target: domain.Ref(1), Expression: Unconditional},
	}, m.TransitionsFrom(0))

	fromCountUp := m.TransitionsFrom(1)
	require.Len(t, fromCountUp, 2)
	assert.Equal(t, "count >= 10", fromCountUp[0].Expression)
	assert.Equal(t, domain.Ref(2), fromCountUp[0].Target)
	assert.Equal(t, "after(5)", fromCountUp[1].Expression)
	assert.False(t, fromCountUp[1].Target.IsSet())

	assert.Equal(t, domain.Ref(3), m.SuspendState())
}

func TestBuilder_ForwardReference(t *testing.T) {
	b := New("Scenario")
	b.State("S0").Branch("g", "S1")
	b.State("S1")

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.Ref(1), m.Transitions()[0].Target)
	assert.False(t, m.IsSuspensible())
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
	}{
		{
			name: "Duplicate State",
			build: func() *Builder {
				return New("M").State("A").State("A").Builder()
			},
		},
		{
			name: "Empty State Name",
			build: func() *Builder {
				return New("M").State("").Builder()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			assert.Error(t, err)
		})
	}
}

func TestBuilder_UnknownSuspend(t *testing.T) {
	m, err := New("M").State("A").Suspend("B").Build()
	require.NoError(t, err)
	assert.False(t, m.SuspendState().IsSet())
}

func TestBuilder_Empty(t *testing.T) {
	m, err := New("Empty").Build()
	require.NoError(t, err)
	_, ok := m.InitialState()
	assert.False(t, ok)
	assert.Empty(t, m.States())
}
