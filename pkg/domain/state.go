package domain

import (
	"fmt"
	"strconv"
)

// StateID is the position of a state in its machine's state sequence.
type StateID int

// State is a named unit of behaviour within a machine.
type State struct {
	Name string `json:"name" yaml:"name"`
}

// NewState creates a state with the given name.
func NewState(name string) State {
	return State{Name: name}
}

// String returns the description of the state.
func (s State) String() string {
	return s.Name
}

// StateRef is an optional StateID.
// The zero value refers to no state.
type StateRef struct {
	id    StateID
	isSet bool
}

// Ref returns a reference to the given state.
func Ref(id StateID) StateRef {
	return StateRef{id: id, isSet: true}
}

// NoState returns an empty reference.
func NoState() StateRef {
	return StateRef{}
}

// Get returns the referenced id and whether the reference is set.
func (r StateRef) Get() (StateID, bool) {
	return r.id, r.isSet
}

// In returns the referenced id when it indexes an entry of states.
func (r StateRef) In(states []State) (StateID, bool) {
	if !r.isSet || r.id < 0 || int(r.id) >= len(states) {
		return 0, false
	}
	return r.id, true
}

// IsSet reports whether the reference points at a state.
func (r StateRef) IsSet() bool {
	return r.isSet
}

func (r StateRef) String() string {
	if !r.isSet {
		return "none"
	}
	return strconv.Itoa(int(r.id))
}

// MarshalText encodes the reference as its index, or "none" when empty.
func (r StateRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *StateRef) UnmarshalText(text []byte) error {
	if string(text) == "none" || len(text) == 0 {
		*r = NoState()
		return nil
	}
	n, err := strconv.Atoi(string(text))
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("state reference %d: %w", n, ErrStateNotFound)
	}
	*r = Ref(StateID(n))
	return nil
}

// Lookup resolves a state name against an ordered state list.
// It returns NoState when no state carries that name.
func Lookup(states []State, name string) StateRef {
	for i, s := range states {
		if s.Name == name {
			return Ref(StateID(i))
		}
	}
	return NoState()
}

// Resolve checks that index addresses an entry of states.
// Out-of-range indices (dangling or external references) resolve to NoState.
func Resolve(states []State, index int) StateRef {
	if index < 0 || index >= len(states) {
		return NoState()
	}
	return Ref(StateID(index))
}
