package dsl

import "github.com/aretw0/espalier/pkg/domain"

// Unconditional is the guard used by Go.
const Unconditional = "true"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name    string
	builder *Builder
}

// Name returns the state name.
func (s *StateBuilder) Name() string {
	return s.name
}

// Go adds an unconditional transition to the target state.
func (s *StateBuilder) Go(target string) *StateBuilder {
	return s.Branch(Unconditional, target)
}

// Branch adds a guarded transition to the target state.
// Transitions of a state keep the order in which they are added.
func (s *StateBuilder) Branch(expression, target string) *StateBuilder {
	s.builder.transitions = append(s.builder.transitions, pendingTransition{
		source:     s.name,
		target:     target,
		expression: expression,
	})
	return s
}

// State declares the next state. It is shorthand for s.Builder().State(name).
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Suspend names the machine's suspend state.
func (s *StateBuilder) Suspend(name string) *Builder {
	return s.builder.Suspend(name)
}

// Builder returns the owning machine builder.
func (s *StateBuilder) Builder() *Builder {
	return s.builder
}

// Build compiles the owning builder.
func (s *StateBuilder) Build() (*domain.SuspensibleMachine, error) {
	return s.builder.Build()
}
