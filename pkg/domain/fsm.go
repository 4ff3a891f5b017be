package domain

import "strings"

// NotSuspensible is the description used for a machine without a suspend state.
const NotSuspensible = "<not suspensible>"

// FSM is the capability set every concrete machine exposes.
type FSM interface {
	// States returns the ordered state sequence.
	States() []State

	// InitialState returns the first state, or false for an empty machine.
	InitialState() (State, bool)

	// SetInitialState replaces the first state, or appends it to an empty machine.
	SetInitialState(State)

	// Transitions returns the ordered transition sequence.
	Transitions() []Transition

	// TransitionsFrom returns the transitions whose source is id, in their original order.
	TransitionsFrom(id StateID) []Transition
}

// Suspensible is implemented by machines that may carry a suspend state.
type Suspensible interface {
	SuspendState() StateRef
}

// SuspensibleFSM is a machine exposing both capabilities.
type SuspensibleFSM interface {
	FSM
	Suspensible
}

// Describe joins the description of every state with newlines, in state order.
func Describe(m FSM) string {
	states := m.States()
	lines := make([]string, len(states))
	for i, s := range states {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// DescribeSuspensible appends the suspend state's description to Describe.
func DescribeSuspensible(m SuspensibleFSM) string {
	suspend := NotSuspensible
	states := m.States()
	if id, ok := m.SuspendState().In(states); ok {
		suspend = states[id].String()
	}
	return Describe(m) + "\n" + suspend
}
