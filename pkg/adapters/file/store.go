// Package file persists arrangements as manifest files on the local filesystem.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier/pkg/arrangement"
)

// Suffix is the conventional extension of an arrangement directory.
const Suffix = ".arrangement"

// Store implements ports.ArrangementStore using the local filesystem.
// Each arrangement is a directory holding a Machines manifest.
type Store struct {
	BasePath string
}

// NewStore creates a Store resolving relative arrangement names against basePath.
// If basePath is empty, names are used as directory paths as-is.
func NewStore(basePath string) *Store {
	return &Store{BasePath: basePath}
}

// Dir returns the directory that holds the arrangement's manifest.
func (s *Store) Dir(name string) string {
	if filepath.IsAbs(name) || s.BasePath == "" {
		return name
	}
	return filepath.Join(s.BasePath, name)
}

// Save writes the manifest.
func (s *Store) Save(ctx context.Context, name string, machines []string) error {
	if name == "" {
		return fmt.Errorf("arrangement name cannot be empty")
	}
	return arrangement.Save(s.Dir(name), machines)
}

// Load reads the manifest.
func (s *Store) Load(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("arrangement name cannot be empty")
	}
	return arrangement.Load(s.Dir(name))
}

// Delete removes the manifest. The directory itself is left in place since it
// may hold other files.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("arrangement name cannot be empty")
	}
	err := os.Remove(arrangement.Path(s.Dir(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete manifest: %w", err)
	}
	return nil
}

// List returns the names of the arrangements under BasePath.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list arrangements: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		if _, err := os.Stat(arrangement.Path(filepath.Join(s.BasePath, entry.Name()))); err == nil {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
