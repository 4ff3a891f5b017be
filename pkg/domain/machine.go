package domain

import "slices"

// Machine is the in-memory aggregate of an FSM.
// It is owned by a single caller; concurrent mutation is not supported.
type Machine struct {
	Name string

	states      []State
	transitions []Transition
}

var _ FSM = (*Machine)(nil)

// NewMachine creates a machine holding the given states in order.
func NewMachine(name string, states ...State) *Machine {
	return &Machine{
		Name:   name,
		states: slices.Clone(states),
	}
}

// States returns a copy of the state sequence.
func (m *Machine) States() []State {
	return slices.Clone(m.states)
}

// State returns the state addressed by id.
func (m *Machine) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(m.states) {
		return State{}, false
	}
	return m.states[id], true
}

// Lookup resolves a state name to its id.
func (m *Machine) Lookup(name string) StateRef {
	return Lookup(m.states, name)
}

// AddState appends a state and returns its id.
func (m *Machine) AddState(s State) StateID {
	m.states = append(m.states, s)
	return StateID(len(m.states) - 1)
}

// SetStates replaces the state sequence.
func (m *Machine) SetStates(states []State) {
	m.states = slices.Clone(states)
}

// InitialState returns states[0].
func (m *Machine) InitialState() (State, bool) {
	if len(m.states) == 0 {
		return State{}, false
	}
	return m.states[0], true
}

// SetInitialState replaces states[0], leaving the rest of the sequence intact.
// On an empty machine the state is appended and becomes the only state.
func (m *Machine) SetInitialState(s State) {
	if len(m.states) == 0 {
		m.states = append(m.states, s)
		return
	}
	m.states[0] = s
}

// Transitions returns a copy of the transition sequence.
func (m *Machine) Transitions() []Transition {
	return slices.Clone(m.transitions)
}

// AddTransition appends a transition.
func (m *Machine) AddTransition(t Transition) {
	m.transitions = append(m.transitions, t)
}

// SetTransitions replaces the transition sequence.
func (m *Machine) SetTransitions(ts []Transition) {
	m.transitions = slices.Clone(ts)
}

// TransitionsFrom returns the transitions leaving id, in their original order.
// The result is empty, never nil, when none match.
func (m *Machine) TransitionsFrom(id StateID) []Transition {
	out := make([]Transition, 0)
	for _, t := range m.transitions {
		if t.Source == id {
			out = append(out, t)
		}
	}
	return out
}

func (m *Machine) String() string {
	return Describe(m)
}

// SuspensibleMachine is a Machine with an optional suspend state.
type SuspensibleMachine struct {
	*Machine

	suspend StateRef
}

var _ SuspensibleFSM = (*SuspensibleMachine)(nil)

// NewSuspensibleMachine creates a machine without a suspend state.
func NewSuspensibleMachine(name string, states ...State) *SuspensibleMachine {
	return &SuspensibleMachine{Machine: NewMachine(name, states...)}
}

// SuspendState returns the suspend state, if any.
func (m *SuspensibleMachine) SuspendState() StateRef {
	return m.suspend
}

// SetSuspendState sets or clears the suspend state.
func (m *SuspensibleMachine) SetSuspendState(ref StateRef) {
	m.suspend = ref
}

// IsSuspensible reports whether the machine has a suspend state.
func (m *SuspensibleMachine) IsSuspensible() bool {
	return m.suspend.IsSet()
}

func (m *SuspensibleMachine) String() string {
	return DescribeSuspensible(m)
}
