package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ArrangementStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and failures at warn level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ArrangementStore) ports.ArrangementStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) observe(op, name string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "arrangement", name, "elapsed", time.Since(start))
	if err != nil {
		m.logger.Warn("arrangement store failed", append(attrs, "error", err)...)
		return
	}
	m.logger.Debug("arrangement store", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, machines []string) error {
	start := time.Now()
	err := m.next.Save(ctx, name, machines)
	m.observe("save", name, start, err, "machines", len(machines))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) ([]string, error) {
	start := time.Now()
	machines, err := m.next.Load(ctx, name)
	m.observe("load", name, start, err, "machines", len(machines))
	return machines, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.observe("delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := list(ctx, m.next)
	m.observe("list", "", start, err, "arrangements", len(names))
	return names, err
}

func (m *loggingMiddleware) Unwrap() ports.ArrangementStore {
	return m.next
}
