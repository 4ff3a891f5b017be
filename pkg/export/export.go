// Package export drives a language binding over a machine bundle and
// assembles the in-memory machine together with its text fragments.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/aretw0/espalier/internal/dto"
	"github.com/aretw0/espalier/pkg/adapters/bundle"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// DefaultWorkers bounds ExportAll when no worker count is configured.
const DefaultWorkers = 4

// Result is one exported machine.
type Result struct {
	Location         string
	Format           string
	Machine          *domain.SuspensibleMachine
	Boilerplate      domain.Boilerplate
	StateBoilerplate map[string]domain.Boilerplate
}

// Document returns the serialisable view of r.
func (r *Result) Document() dto.MachineDocument {
	return dto.FromMachine(r.Machine, r.Format, r.Boilerplate, r.StateBoilerplate)
}

// Exporter resolves bindings through a registry and queries them.
type Exporter struct {
	registry *registry.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	workers  int
}

// Option defines a functional option for configuring the Exporter.
type Option func(*Exporter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithMetrics records exports and binding queries.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// WithWorkers bounds the concurrency of ExportAll.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		e.workers = n
	}
}

// New creates an Exporter. A nil registry uses registry.Default().
func New(reg *registry.Registry, opts ...Option) *Exporter {
	e := &Exporter{registry: reg}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = registry.Default()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.workers <= 0 {
		e.workers = DefaultWorkers
	}
	return e
}

// Export reads the bundle at location through the binding for format.
//
// The binding is resolved before anything is read, so an unsupported format
// fails with *domain.UnsupportedOutputFormatError and produces no output.
func (e *Exporter) Export(ctx context.Context, location, format string) (res *Result, err error) {
	binding, err := e.registry.Lookup(format)
	if err != nil {
		e.logger.Error("export rejected", "format", format, "location", location, "err", err)
		return nil, err
	}

	start := time.Now()
	defer func() {
		e.metrics.ObserveExport(binding.Format(), time.Since(start), err)
	}()

	bd, err := bundle.Open(location)
	if err != nil {
		return nil, err
	}
	states, err := bd.ReadStates()
	if err != nil {
		return nil, fmt.Errorf("failed to read states of %s: %w", bd.Name(), err)
	}

	q := querier{binding: binding, metrics: e.metrics, location: location}
	m := domain.NewSuspensibleMachine(bd.Name(), states...)

	for id, s := range states {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts, err := q.transitions(states, domain.StateID(id), s.Name)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			m.AddTransition(t)
		}
	}

	suspend, err := q.suspendState(states)
	if err != nil {
		return nil, err
	}
	m.SetSuspendState(suspend)

	res = &Result{
		Location:         location,
		Format:           binding.Format(),
		Machine:          m,
		StateBoilerplate: make(map[string]domain.Boilerplate, len(states)),
	}
	if res.Boilerplate, err = q.boilerplate(); err != nil {
		return nil, err
	}
	for _, s := range states {
		bp, err := q.stateBoilerplate(s.Name)
		if err != nil {
			return nil, err
		}
		res.StateBoilerplate[s.Name] = bp
	}

	e.logger.Debug("machine exported",
		"machine", m.Name,
		"format", res.Format,
		"states", len(states),
		"transitions", len(m.Transitions()),
	)
	return res, nil
}

// ExportAll exports every location concurrently.
// Results keep the order of locations; the first error wins.
func (e *Exporter) ExportAll(ctx context.Context, locations []string, format string) ([]*Result, error) {
	if _, err := e.registry.Lookup(format); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(locations))
	pool := pond.NewPool(e.workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for i, location := range locations {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Export(ctx, location, format)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// querier issues binding queries and counts them.
type querier struct {
	binding  ports.LanguageBinding
	metrics  *observability.Metrics
	location string
}

func (q querier) count(query string) {
	q.metrics.CountQuery(q.binding.Format(), query)
}

func (q querier) transitions(states []domain.State, id domain.StateID, stateName string) ([]domain.Transition, error) {
	q.count("transitions")
	n, err := q.binding.NumberOfTransitions(q.location, stateName)
	if err != nil {
		return nil, fmt.Errorf("failed to count transitions of %s: %w", stateName, err)
	}

	out := make([]domain.Transition, 0, n)
	for i := range n {
		q.count("expression")
		expr, err := q.binding.ExpressionOfTransition(q.location, stateName, i)
		if err != nil {
			return nil, fmt.Errorf("failed to read expression %d of %s: %w", i, stateName, err)
		}
		q.count("target")
		target, err := q.binding.TargetOfTransition(q.location, states, stateName, i)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve target %d of %s: %w", i, stateName, err)
		}
		out = append(out, domain.Transition{Source: id, Target: target, Expression: expr})
	}
	return out, nil
}

func (q querier) suspendState(states []domain.State) (domain.StateRef, error) {
	q.count("suspend")
	ref, err := q.binding.SuspendState(q.location, states)
	if err != nil {
		return domain.NoState(), fmt.Errorf("failed to resolve suspend state: %w", err)
	}
	return ref, nil
}

func (q querier) boilerplate() (domain.Boilerplate, error) {
	q.count("boilerplate")
	bp, err := q.binding.Boilerplate(q.location)
	if err != nil {
		return nil, fmt.Errorf("failed to read boilerplate: %w", err)
	}
	return bp, nil
}

func (q querier) stateBoilerplate(stateName string) (domain.Boilerplate, error) {
	q.count("state_boilerplate")
	bp, err := q.binding.StateBoilerplate(q.location, stateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read boilerplate of %s: %w", stateName, err)
	}
	return bp, nil
}
