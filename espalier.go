package espalier

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/adapters/bundle"
	"github.com/aretw0/espalier/pkg/adapters/cache"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/export"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// Version is overridden at build time with -ldflags "-X github.com/aretw0/espalier.Version=...".
var Version = "dev"

// Espalier is the high-level entry point of the library.
// It wraps the registry, the export driver and an arrangement store.
type Espalier struct {
	dir      string
	registry *registry.Registry
	store    ports.ArrangementStore
	storeMW  []middleware.Middleware
	logger   *slog.Logger
	metrics  *observability.Metrics
	cacheTTL time.Duration
	workers  int

	exporter *export.Exporter
}

// Option defines a functional option for configuring Espalier.
type Option func(*Espalier)

// WithRegistry replaces the default binding registry.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Espalier) {
		e.registry = r
	}
}

// WithStore injects a custom ArrangementStore, bypassing the default file store.
func WithStore(s ports.ArrangementStore) Option {
	return func(e *Espalier) {
		e.store = s
	}
}

// WithStoreMiddleware decorates the arrangement store. The first middleware is the outermost.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Espalier) {
		e.storeMW = append(e.storeMW, mws...)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Espalier) {
		e.logger = logger
	}
}

// WithMetrics records exports and binding queries.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Espalier) {
		e.metrics = m
	}
}

// WithCacheTTL memoises binding queries for ttl. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Espalier) {
		e.cacheTTL = ttl
	}
}

// WithWorkers bounds the concurrency of arrangement exports.
func WithWorkers(n int) Option {
	return func(e *Espalier) {
		e.workers = n
	}
}

// New initializes espalier over the machines found under dir.
// By default arrangements are read from dir as well.
func New(dir string, opts ...Option) (*Espalier, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	e := &Espalier{dir: abs}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = registry.Default()
	}
	if e.cacheTTL > 0 {
		e.registry = e.registry.Map(cache.Wrap(e.cacheTTL))
	}
	if e.store == nil {
		e.store = file.NewStore(abs)
	}
	e.store = middleware.Chain(e.store, e.storeMW...)
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	e.exporter = export.New(e.registry,
		export.WithLogger(e.logger),
		export.WithMetrics(e.metrics),
		export.WithWorkers(e.workers),
	)
	return e, nil
}

// Dir returns the absolute machine directory.
func (e *Espalier) Dir() string {
	return e.dir
}

// Formats lists the supported output formats.
func (e *Espalier) Formats() []string {
	return e.registry.Formats()
}

// Store returns the arrangement store.
func (e *Espalier) Store() ports.ArrangementStore {
	return e.store
}

// Locate resolves a machine name or bundle path against the machine directory.
func (e *Espalier) Locate(machine string) string {
	return bundle.MachineLocation(e.dir, machine)
}

// Export exports one machine.
func (e *Espalier) Export(ctx context.Context, machine, format string) (*export.Result, error) {
	return e.exporter.Export(ctx, e.Locate(machine), format)
}

// Discover lists the machine bundles in the machine directory.
func (e *Espalier) Discover() ([]string, error) {
	return bundle.Discover(e.dir)
}

// Machines returns the bundle locations of an arrangement, in manifest order.
// Stores backed by a directory resolve names against that directory;
// others resolve against the machine directory.
func (e *Espalier) Machines(ctx context.Context, arrangement string) ([]string, error) {
	names, err := e.store.Load(ctx, arrangement)
	if err != nil {
		return nil, err
	}

	base := e.dir
	if d, ok := middleware.Unwrap(e.store).(interface{ Dir(string) string }); ok {
		base = d.Dir(arrangement)
	}

	locations := make([]string, len(names))
	for i, name := range names {
		locations[i] = bundle.MachineLocation(base, name)
	}
	return locations, nil
}

// ExportArrangement exports every machine of an arrangement.
func (e *Espalier) ExportArrangement(ctx context.Context, arrangement, format string) ([]*export.Result, error) {
	locations, err := e.Machines(ctx, arrangement)
	if err != nil {
		return nil, err
	}
	e.logger.Info("exporting arrangement", "arrangement", arrangement, "machines", len(locations), "format", format)
	return e.exporter.ExportAll(ctx, locations, format)
}
