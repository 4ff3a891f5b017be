// Package validator checks an exported machine graph for broken links and
// states that no path reaches.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// ErrInvalidGraph is wrapped by the error ValidateGraph returns.
var ErrInvalidGraph = errors.New("invalid machine graph")

// Kind classifies an Issue.
type Kind string

const (
	// DanglingTransition is a transition whose target names no known state.
	DanglingTransition Kind = "dangling-transition"
	// UnreachableState is a state no path from the initial or suspend state reaches.
	UnreachableState Kind = "unreachable-state"
)

// Issue is a single finding.
type Issue struct {
	Kind  Kind
	State string
	// Index is the position of the transition among those leaving State, or -1.
	Index int
}

func (i Issue) String() string {
	switch i.Kind {
	case DanglingTransition:
		return fmt.Sprintf("Dangling transition: '%s' #%d has no target", i.State, i.Index)
	case UnreachableState:
		return fmt.Sprintf("Unreachable state: '%s'", i.State)
	}
	return fmt.Sprintf("%s: '%s'", i.Kind, i.State)
}

// Check crawls the machine from its initial state, and from its suspend state
// when it has one, and returns the findings in state order.
func Check(m domain.SuspensibleFSM) []Issue {
	states := m.States()
	if len(states) == 0 {
		return nil
	}

	visited := make([]bool, len(states))
	queue := []domain.StateID{0}
	if id, ok := m.SuspendState().In(states); ok {
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, t := range m.TransitionsFrom(current) {
			target, ok := t.Target.In(states)
			if ok && !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var issues []Issue
	for i, s := range states {
		for j, t := range m.TransitionsFrom(domain.StateID(i)) {
			if _, ok := t.Target.In(states); !ok {
				issues = append(issues, Issue{Kind: DanglingTransition, State: s.Name, Index: j})
			}
		}
		if !visited[i] {
			issues = append(issues, Issue{Kind: UnreachableState, State: s.Name, Index: -1})
		}
	}
	return issues
}

// ValidateGraph returns nil when Check finds nothing, and an error listing
// every issue otherwise.
func ValidateGraph(m domain.SuspensibleFSM) error {
	issues := Check(m)
	if len(issues) == 0 {
		return nil
	}

	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", ErrInvalidGraph, len(issues), strings.Join(lines, "\n- "))
}
