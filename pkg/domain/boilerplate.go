package domain

import (
	"maps"
	"slices"
)

// Well-known boilerplate sections. Bindings may add their own.
const (
	SectionIncludes  = "includes"
	SectionVariables = "variables"
	SectionMethods   = "methods"
	SectionCustom    = "custom"
	SectionOnEntry   = "on_entry"
	SectionOnExit    = "on_exit"
	SectionInternal  = "internal"
	SectionOnSuspend = "on_suspend"
	SectionOnResume  = "on_resume"
)

// Boilerplate holds backend-specific text fragments keyed by section name.
// Its content is opaque to the core.
type Boilerplate map[string]string

// Section returns the text of a section, or "" if absent.
func (b Boilerplate) Section(name string) string {
	return b[name]
}

// Sections returns the section names in sorted order.
func (b Boilerplate) Sections() []string {
	return slices.Sorted(maps.Keys(b))
}

// Clone returns an independent copy.
func (b Boilerplate) Clone() Boilerplate {
	if b == nil {
		return nil
	}
	return maps.Clone(b)
}
