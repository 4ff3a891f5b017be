package ports

import "github.com/aretw0/espalier/pkg/domain"

// LanguageBinding answers structural questions about a machine persisted on disk
// in one output format's layout.
//
// Implementations hold no mutable state: every method is a pure function of
// its arguments and the files it reads, so identical inputs yield identical
// outputs and calls may run concurrently.
//
// Methods taking an index require 0 <= index < NumberOfTransitions(location, stateName).
// Violations return a *domain.TransitionIndexError.
type LanguageBinding interface {
	// Format returns the output format identifier this binding serves (e.g. "c", "cxx").
	Format() string

	// NumberOfTransitions returns how many transitions leave stateName.
	NumberOfTransitions(location, stateName string) (int, error)

	// ExpressionOfTransition returns the guard source text of transition index of stateName.
	ExpressionOfTransition(location, stateName string, index int) (string, error)

	// TargetOfTransition resolves the destination of transition index of stateName
	// against states. It returns domain.NoState() when the persisted target
	// does not name a known state.
	TargetOfTransition(location string, states []domain.State, stateName string, index int) (domain.StateRef, error)

	// SuspendState resolves the machine's suspend state against states.
	// It returns domain.NoState() when the machine is not suspensible.
	SuspendState(location string, states []domain.State) (domain.StateRef, error)

	// Boilerplate returns the machine-level text fragments.
	Boilerplate(location string) (domain.Boilerplate, error)

	// StateBoilerplate returns the text fragments of one state.
	StateBoilerplate(location, stateName string) (domain.Boilerplate, error)
}
