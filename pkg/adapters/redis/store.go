// Package redis persists arrangements in Redis, so several hosts can share the
// same machine lists.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ArrangementStore using Redis.
// Machine lists are stored as JSON arrays so that an empty arrangement still exists.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for arrangements.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for arrangements.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "espalier:arrangement:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the machine list.
func (s *Store) Save(ctx context.Context, name string, machines []string) error {
	if err := arrangement.Validate(machines); err != nil {
		return err
	}
	if machines == nil {
		machines = []string{}
	}
	data, err := json.Marshal(machines)
	if err != nil {
		return fmt.Errorf("failed to marshal arrangement: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the machine list.
func (s *Store) Load(ctx context.Context, name string) ([]string, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, &domain.MissingManifestError{Path: s.key(name)}
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	machines := []string{}
	if err := json.Unmarshal([]byte(val), &machines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arrangement: %w", err)
	}
	return machines, nil
}

// Delete removes the arrangement.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the names of stored arrangements, pruning expired entries from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list arrangements: %w", err)
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		n, err := s.client.Exists(ctx, s.key(m)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check arrangement %s: %w", m, err)
		}
		if n == 0 {
			if err := s.client.SRem(ctx, s.indexKey(), m).Err(); err != nil {
				return nil, fmt.Errorf("failed to prune arrangement %s: %w", m, err)
			}
			continue
		}
		names = append(names, m)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
