// Package clfsm implements the "cxx" language binding for machines generated
// as CLFSM C++ classes.
//
// Transition counts and targets are recovered from the generated state
// headers (State_<S>.h), which declare
//
//	Transition_<i>(int toState = <K>): CLTransition(toState) {}
//	virtual int numberOfTransitions() const { return <N>; }
//
// Guards live in State_<S>_Transition_<i>.expr and the suspend state is named
// by the bundle's SuspendState file.
package clfsm

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/aretw0/espalier/pkg/adapters/bundle"
	"github.com/aretw0/espalier/pkg/domain"
)

// Format is the output format identifier of this binding.
const Format = "cxx"

var (
	countPattern      = regexp.MustCompile(`numberOfTransitions\(\)\s*const\s*\{\s*return\s+(\d+)\s*;\s*\}`)
	transitionPattern = regexp.MustCompile(`Transition_(\d+)\(\s*int\s+toState\s*=\s*(-?\d+)\s*\)`)
)

// Binding is the CLFSM binding. The zero value is ready to use.
type Binding struct{}

// New returns a CLFSM binding.
func New() *Binding {
	return &Binding{}
}

// Format returns "cxx".
func (b *Binding) Format() string {
	return Format
}

func stateHeader(stateName string) string {
	return "State_" + stateName + ".h"
}

// header reads the state header and the transition count it declares.
func (b *Binding) header(location, stateName string) (string, int, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return "", 0, err
	}
	text, err := bd.ReadStateFile(stateName, stateHeader(stateName))
	if err != nil {
		return "", 0, err
	}
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return "", 0, fmt.Errorf("machine %s: %s declares no numberOfTransitions", bd.Name(), stateHeader(stateName))
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, fmt.Errorf("machine %s: invalid transition count %q: %w", bd.Name(), m[1], err)
	}
	return text, n, nil
}

// NumberOfTransitions returns the count declared by State_<stateName>.h.
func (b *Binding) NumberOfTransitions(location, stateName string) (int, error) {
	_, n, err := b.header(location, stateName)
	return n, err
}

// ExpressionOfTransition reads State_<stateName>_Transition_<index>.expr.
func (b *Binding) ExpressionOfTransition(location, stateName string, index int) (string, error) {
	_, n, err := b.header(location, stateName)
	if err != nil {
		return "", err
	}
	if err := domain.CheckTransitionIndex(stateName, index, n); err != nil {
		return "", err
	}
	bd, err := bundle.Open(location)
	if err != nil {
		return "", err
	}
	return bd.Expression(stateName, index)
}

// TargetOfTransition resolves the toState default argument of Transition_<index>.
func (b *Binding) TargetOfTransition(location string, states []domain.State, stateName string, index int) (domain.StateRef, error) {
	text, n, err := b.header(location, stateName)
	if err != nil {
		return domain.NoState(), err
	}
	if err := domain.CheckTransitionIndex(stateName, index, n); err != nil {
		return domain.NoState(), err
	}
	for _, m := range transitionPattern.FindAllStringSubmatch(text, -1) {
		if m[1] != strconv.Itoa(index) {
			continue
		}
		target, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.NoState(), nil
		}
		return domain.Resolve(states, target), nil
	}
	// Declared in the count but not as a class: the target is unknown.
	return domain.NoState(), nil
}

// SuspendState resolves the SuspendState file by name.
func (b *Binding) SuspendState(location string, states []domain.State) (domain.StateRef, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return domain.NoState(), err
	}
	name, err := bd.SuspendStateName()
	if err != nil || name == "" {
		return domain.NoState(), err
	}
	return domain.Lookup(states, name), nil
}

// Boilerplate reads <Name>_Includes.h, <Name>_Variables.h and <Name>_Methods.h.
func (b *Binding) Boilerplate(location string) (domain.Boilerplate, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return nil, err
	}
	name := bd.Name()
	return bd.Sections(map[string]string{
		domain.SectionIncludes:  name + "_Includes.h",
		domain.SectionVariables: name + "_Variables.h",
		domain.SectionMethods:   name + "_Methods.h",
	})
}

// StateBoilerplate reads the per-state include, variable, method and action files.
func (b *Binding) StateBoilerplate(location, stateName string) (domain.Boilerplate, error) {
	if _, _, err := b.header(location, stateName); err != nil {
		return nil, err
	}
	bd, err := bundle.Open(location)
	if err != nil {
		return nil, err
	}
	prefix := "State_" + stateName
	return bd.Sections(map[string]string{
		domain.SectionIncludes:  prefix + "_Includes.h",
		domain.SectionVariables: prefix + "_Variables.h",
		domain.SectionMethods:   prefix + "_Methods.h",
		domain.SectionOnEntry:   prefix + "_OnEntry.mm",
		domain.SectionOnExit:    prefix + "_OnExit.mm",
		domain.SectionInternal:  prefix + "_Internal.mm",
		domain.SectionOnSuspend: prefix + "_OnSuspend.mm",
		domain.SectionOnResume:  prefix + "_OnResume.mm",
	})
}
