package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

type pendingTransition struct {
	source     string
	target     string
	expression string
}

// Builder manages the machine construction.
type Builder struct {
	name        string
	states      []*StateBuilder
	index       map[string]*StateBuilder
	transitions []pendingTransition
	suspend     string
	errs        []error
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]*StateBuilder),
	}
}

// State declares a new state and returns its builder.
// Declaring the same name twice is reported by Build.
func (b *Builder) State(name string) *StateBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("state name must not be empty"))
	} else if _, dup := b.index[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("state %q declared twice", name))
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states = append(b.states, sb)
	if _, dup := b.index[name]; !dup {
		b.index[name] = sb
	}
	return sb
}

// Suspend names the suspend state. An empty name clears it.
func (b *Builder) Suspend(name string) *Builder {
	b.suspend = name
	return b
}

// Build compiles the declarations into a machine.
func (b *Builder) Build() (*domain.SuspensibleMachine, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build machine %s: %w", b.name, errors.Join(b.errs...))
	}

	m := domain.NewSuspensibleMachine(b.name)
	for _, sb := range b.states {
		m.AddState(domain.NewState(sb.name))
	}
	for _, pt := range b.transitions {
		source, _ := m.Lookup(pt.source).Get()
		m.AddTransition(domain.Transition{
			Source:     source,
			Target:     m.Lookup(pt.target),
			Expression: pt.expression,
		})
	}
	if b.suspend != "" {
		m.SetSuspendState(m.Lookup(b.suspend))
	}
	return m, nil
}
