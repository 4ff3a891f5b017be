// Package cache memoises language binding queries.
//
// Bindings are pure functions of their inputs and the bundle on disk, so a
// result may be reused until the bundle changes. Entries expire after a TTL
// to pick up edits made by other tools.
package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
)

// DefaultTTL is the expiration used when none is configured.
const DefaultTTL = 5 * time.Minute

// Binding wraps a ports.LanguageBinding and caches successful results.
type Binding struct {
	next  ports.LanguageBinding
	cache *gocache.Cache
}

// New returns a caching decorator around next. A ttl <= 0 uses DefaultTTL.
func New(next ports.LanguageBinding, ttl time.Duration) *Binding {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Binding{
		next:  next,
		cache: gocache.New(ttl, ttl/2),
	}
}

// Wrap returns a function suitable for registry.Map.
func Wrap(ttl time.Duration) func(ports.LanguageBinding) ports.LanguageBinding {
	return func(b ports.LanguageBinding) ports.LanguageBinding {
		return New(b, ttl)
	}
}

// hash is swapped in tests to force collisions.
var hash = xxh3.HashString

// cacheKey names one query. The go-cache key is the query name plus a digest
// of the inputs; input is kept alongside the value so a digest collision reads
// as a miss instead of another query's result.
type cacheKey struct {
	id    string
	input string
}

type entry struct {
	input string
	value any
}

// key joins the inputs with NUL, which cannot appear in paths or state names.
func key(query string, parts ...string) cacheKey {
	input := strings.Join(parts, "\x00")
	return cacheKey{
		id:    query + ":" + strconv.FormatUint(hash(input), 16),
		input: input,
	}
}

// lookup returns the cached value for k or loads and stores it.
// Errors are never cached.
func lookup[T any](b *Binding, k cacheKey, load func() (T, error)) (T, error) {
	if v, ok := b.cache.Get(k.id); ok {
		if e := v.(entry); e.input == k.input {
			return e.value.(T), nil
		}
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	b.cache.SetDefault(k.id, entry{input: k.input, value: v})
	return v, nil
}

func statesKey(states []domain.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name
	}
	return strings.Join(names, "\n")
}

// Flush drops every cached entry.
func (b *Binding) Flush() {
	b.cache.Flush()
}

// Len reports the number of cached entries, including expired ones not yet evicted.
func (b *Binding) Len() int {
	return b.cache.ItemCount()
}

func (b *Binding) Format() string {
	return b.next.Format()
}

func (b *Binding) NumberOfTransitions(location, stateName string) (int, error) {
	return lookup(b, key("count", location, stateName), func() (int, error) {
		return b.next.NumberOfTransitions(location, stateName)
	})
}

func (b *Binding) ExpressionOfTransition(location, stateName string, index int) (string, error) {
	return lookup(b, key("expression", location, stateName, strconv.Itoa(index)), func() (string, error) {
		return b.next.ExpressionOfTransition(location, stateName, index)
	})
}

func (b *Binding) TargetOfTransition(location string, states []domain.State, stateName string, index int) (domain.StateRef, error) {
	k := key("target", location, statesKey(states), stateName, strconv.Itoa(index))
	return lookup(b, k, func() (domain.StateRef, error) {
		return b.next.TargetOfTransition(location, states, stateName, index)
	})
}

func (b *Binding) SuspendState(location string, states []domain.State) (domain.StateRef, error) {
	return lookup(b, key("suspend", location, statesKey(states)), func() (domain.StateRef, error) {
		return b.next.SuspendState(location, states)
	})
}

func (b *Binding) Boilerplate(location string) (domain.Boilerplate, error) {
	return b.boilerplate(key("boilerplate", location), func() (domain.Boilerplate, error) {
		return b.next.Boilerplate(location)
	})
}

func (b *Binding) StateBoilerplate(location, stateName string) (domain.Boilerplate, error) {
	return b.boilerplate(key("state_boilerplate", location, stateName), func() (domain.Boilerplate, error) {
		return b.next.StateBoilerplate(location, stateName)
	})
}

// boilerplate clones on the way in and out so callers never share the cached map.
func (b *Binding) boilerplate(k cacheKey, load func() (domain.Boilerplate, error)) (domain.Boilerplate, error) {
	bp, err := lookup(b, k, func() (domain.Boilerplate, error) {
		bp, err := load()
		return bp.Clone(), err
	})
	if err != nil {
		return nil, err
	}
	return bp.Clone(), nil
}
