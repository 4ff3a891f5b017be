// Package llfsm implements the "c" language binding for machines generated
// as LLFSM C sources.
//
// Transitions are recovered from the check_transitions function of each
// State_<S>.c, where every guard is spliced in from its .expr file:
//
//	if (
//	    #include "State_<S>_Transition_<i>.expr"
//	) return machine->states[<K>];
//
// The suspend state is the initial value of suspend_state in Machine_<Name>.c.
package llfsm

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/aretw0/espalier/pkg/adapters/bundle"
	"github.com/aretw0/espalier/pkg/domain"
)

// Format is the output format identifier of this binding.
const Format = "c"

// guardPattern captures the state name, the transition index and the target.
var guardPattern = regexp.MustCompile(`#include\s+"State_([^"]+?)_Transition_(\d+)\.expr"\s*\)\s*return\s+machine->states\[(-?\d+)\]\s*;`)

var suspendPattern = regexp.MustCompile(`machine->suspend_state\s*=\s*(?:machine->states\[(\d+)\]|NULL)\s*;`)

// guard is one parsed transition check.
type guard struct {
	index  int
	target int
}

// Binding is the LLFSM binding. The zero value is ready to use.
type Binding struct{}

// New returns an LLFSM binding.
func New() *Binding {
	return &Binding{}
}

// Format returns "c".
func (b *Binding) Format() string {
	return Format
}


// guards parses State_<stateName>.c in transition order.
func (b *Binding) guards(location, stateName string) ([]guard, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return nil, err
	}
	text, err := bd.ReadStateFile(stateName, "State_"+stateName+".c")
	if err != nil {
		return nil, err
	}

	var out []guard
	for _, m := range guardPattern.FindAllStringSubmatch(text, -1) {
		if m[1] != stateName {
			continue
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("machine %s: invalid transition index %q", bd.Name(), m[2])
		}
		target, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("machine %s: invalid target %q", bd.Name(), m[3])
		}
		out = append(out, guard{index: idx, target: target})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out, nil
}

// NumberOfTransitions counts the guards checked by State_<stateName>.c.
func (b *Binding) NumberOfTransitions(location, stateName string) (int, error) {
	gs, err := b.guards(location, stateName)
	return len(gs), err
}

// ExpressionOfTransition reads the guard spliced in by transition index.
func (b *Binding) ExpressionOfTransition(location, stateName string, index int) (string, error) {
	gs, err := b.guards(location, stateName)
	if err != nil {
		return "", err
	}
	if err := domain.CheckTransitionIndex(stateName, index, len(gs)); err != nil {
		return "", err
	}
	bd, err := bundle.Open(location)
	if err != nil {
		return "", err
	}
	return bd.Expression(stateName, gs[index].index)
}

// TargetOfTransition resolves the machine->states[K] returned by transition index.
func (b *Binding) TargetOfTransition(location string, states []domain.State, stateName string, index int) (domain.StateRef, error) {
	gs, err := b.guards(location, stateName)
	if err != nil {
		return domain.NoState(), err
	}
	if err := domain.CheckTransitionIndex(stateName, index, len(gs)); err != nil {
		return domain.NoState(), err
	}
	return domain.Resolve(states, gs[index].target), nil
}

// SuspendState resolves the suspend_state initialiser of Machine_<Name>.c.
func (b *Binding) SuspendState(location string, states []domain.State) (domain.StateRef, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return domain.NoState(), err
	}
	text, err := bd.ReadOptional("Machine_" + bd.Name() + ".c")
	if err != nil {
		return domain.NoState(), err
	}
	m := suspendPattern.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return domain.NoState(), nil
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.NoState(), nil
	}
	return domain.Resolve(states, idx), nil
}

// Boilerplate reads Machine_<Name>_Includes.h, _Variables.h and _Custom.h.
func (b *Binding) Boilerplate(location string) (domain.Boilerplate, error) {
	bd, err := bundle.Open(location)
	if err != nil {
		return nil, err
	}
	prefix := "Machine_" + bd.Name()
	return bd.Sections(map[string]string{
		domain.SectionIncludes:  prefix + "_Includes.h",
		domain.SectionVariables: prefix + "_Variables.h",
		domain.SectionCustom:    prefix + "_Custom.h",
	})
}

// StateBoilerplate reads the per-state include and variable headers and action files.
func (b *Binding) StateBoilerplate(location, stateName string) (domain.Boilerplate, error) {
	if _, err := b.guards(location, stateName); err != nil {
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
		domain.SectionOnEntry:   prefix + "_OnEntry.mm",
		domain.SectionOnExit:    prefix + "_OnExit.mm",
		domain.SectionInternal:  prefix + "_Internal.mm",
		domain.SectionOnSuspend: prefix + "_OnSuspend.mm",
		domain.SectionOnResume:  prefix + "_OnResume.mm",
	})
}
