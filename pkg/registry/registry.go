// Package registry holds the closed set of language bindings keyed by output format.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/adapters/clfsm"
	"github.com/aretw0/espalier/pkg/adapters/llfsm"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Registry maps output formats to their language binding.
// It is built once and never mutated, so lookups need no locking.
type Registry struct {
	bindings map[string]ports.LanguageBinding
}

// New creates a registry from a fixed list of bindings.
// Two bindings claiming the same format is an error.
func New(bindings ...ports.LanguageBinding) (*Registry, error) {
	r := &Registry{
		bindings: make(map[string]ports.LanguageBinding, len(bindings)),
	}
	for _, b := range bindings {
		key := normalize(b.Format())
		if key == "" {
			return nil, fmt.Errorf("binding %T has an empty format", b)
		}
		if _, dup := r.bindings[key]; dup {
			return nil, fmt.Errorf("format %q registered twice", key)
		}
		r.bindings[key] = b
	}
	return r, nil
}

// Default returns the registry of every binding shipped with espalier.
func Default() *Registry {
	r, err := New(llfsm.New(), clfsm.New())
	if err != nil {
		panic(err)
	}
	return r
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// Lookup returns the binding for format.
// Unknown formats yield a *domain.UnsupportedOutputFormatError.
func (r *Registry) Lookup(format string) (ports.LanguageBinding, error) {
	b, ok := r.bindings[normalize(format)]
	if !ok {
		return nil, &domain.UnsupportedOutputFormatError{Format: format}
	}
	return b, nil
}

// MustLookup is like Lookup but panics on unknown formats.
func (r *Registry) MustLookup(format string) ports.LanguageBinding {
	b, err := r.Lookup(format)
	if err != nil {
		panic(err)
	}
	return b
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []string {
	keys := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a registry whose bindings are wrapped by fn, e.g. to add caching.
func (r *Registry) Map(fn func(ports.LanguageBinding) ports.LanguageBinding) *Registry {
	out := &Registry{bindings: make(map[string]ports.LanguageBinding, len(r.bindings))}
	for k, b := range r.bindings {
		out.bindings[k] = fn(b)
	}
	return out
}
