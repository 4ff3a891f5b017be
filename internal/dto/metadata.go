// Package dto holds the serialisable views of machines used by the CLI output.
package dto

import "github.com/aretw0/espalier/pkg/domain"

// MachineDocument is the JSON/YAML view of an exported machine.
// Targets and the suspend state are state names; empty means unresolved.
type MachineDocument struct {
	Name        string               `json:"name" yaml:"name" mapstructure:"name"`
	Format      string               `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
	States      []StateDocument      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []TransitionDocument `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
	Suspend     string               `json:"suspend_state,omitempty" yaml:"suspend_state,omitempty" mapstructure:"suspend_state"`

	Boilerplate map[string]string `json:"boilerplate,omitempty" yaml:"boilerplate,omitempty" mapstructure:"boilerplate"`
}

// StateDocument is one state with its text fragments.
type StateDocument struct {
	Name        string            `json:"name" yaml:"name" mapstructure:"name"`
	Initial     bool              `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
	Boilerplate map[string]string `json:"boilerplate,omitempty" yaml:"boilerplate,omitempty" mapstructure:"boilerplate"`
}

// TransitionDocument is one transition.
type TransitionDocument struct {
	From      string `json:"from" yaml:"from" mapstructure:"from"`
	To        string `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
	Condition string `json:"condition" yaml:"condition" mapstructure:"condition"`
}

func name(m domain.FSM, ref domain.StateRef) string {
	states := m.States()
	id, ok := ref.In(states)
	if !ok {
		return ""
	}
	return states[id].Name
}

// FromMachine builds the document of m. stateBoilerplate may be nil.
func FromMachine(m *domain.SuspensibleMachine, format string, machine domain.Boilerplate, stateBoilerplate map[string]domain.Boilerplate) MachineDocument {
	doc := MachineDocument{
		Name:        m.Name,
		Format:      format,
		States:      make([]StateDocument, 0),
		Transitions: make([]TransitionDocument, 0),
		Suspend:     name(m, m.SuspendState()),
	}
	if len(machine) > 0 {
		doc.Boilerplate = machine.Clone()
	}

	for i, s := range m.States() {
		sd := StateDocument{Name: s.Name, Initial: i == 0}
		if bp := stateBoilerplate[s.Name]; len(bp) > 0 {
			sd.Boilerplate = bp.Clone()
		}
		doc.States = append(doc.States, sd)
	}

	for _, t := range m.Transitions() {
		doc.Transitions = append(doc.Transitions, TransitionDocument{
			From:      name(m, domain.Ref(t.Source)),
			To:        name(m, t.Target),
			Condition: t.Expression,
		})
	}
	return doc
}
