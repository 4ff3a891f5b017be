// Package bundle reads the files of a machine bundle: a directory named
// <Name>.machine holding one machine's persisted representation.
//
// The layout shared by every language binding is:
//
//	States                        state names, one per line, in StateID order
//	State_<S>_Transition_<i>.expr guard text of transition i of state S
//	SuspendState                  optional, name of the suspend state
//
// Binding-specific files (headers, sources, action includes) are read
// through ReadText and Sections.
package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"facette.io/natsort"
	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
)

const (
	// Suffix is the extension of a machine bundle directory.
	Suffix = ".machine"

	// StatesFile lists the machine's states in order.
	StatesFile = "States"

	// SuspendStateFile names the suspend state, if any.
	SuspendStateFile = "SuspendState"
)

// Bundle is an opened machine bundle. It caches nothing.
type Bundle struct {
	path string
	name string
}

// Open checks that location is a directory and returns a Bundle for it.
func Open(location string) (*Bundle, error) {
	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrInvalidBundle, location)
		}
		return nil, fmt.Errorf("failed to stat bundle: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidBundle, location)
	}
	return &Bundle{path: location, name: MachineName(location)}, nil
}

// MachineName returns the machine name of a bundle location ("Counter.machine" -> "Counter").
func MachineName(location string) string {
	return strings.TrimSuffix(filepath.Base(filepath.Clean(location)), Suffix)
}

// MachineLocation resolves a machine name listed in an arrangement to a bundle path under base.
func MachineLocation(base, name string) string {
	if !strings.HasSuffix(name, Suffix) {
		name += Suffix
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(base, name)
}

// Path returns the bundle directory.
func (b *Bundle) Path() string { return b.path }

// Name returns the machine name.
func (b *Bundle) Name() string { return b.name }

// File returns the path of a file inside the bundle.
func (b *Bundle) File(name string) string {
	return filepath.Join(b.path, name)
}

// ReadText returns the content of a bundle file.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func (b *Bundle) ReadText(name string) (string, error) {
	data, err := os.ReadFile(b.File(name))
	if err != nil {
		return "", fmt.Errorf("machine %s: %w", b.name, err)
	}
	return string(data), nil
}

// ReadOptional returns the content of a bundle file, or "" if it does not exist.
func (b *Bundle) ReadOptional(name string) (string, error) {
	text, err := b.ReadText(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return text, err
}

// ReadStateFile reads a file belonging to stateName.
// A missing file means the bundle knows no such state.
func (b *Bundle) ReadStateFile(stateName, name string) (string, error) {
	text, err := b.ReadText(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("machine %s: %w: %s (%s missing)", b.name, domain.ErrStateNotFound, stateName, name)
	}
	return text, err
}

// ReadStates parses the States file.
func (b *Bundle) ReadStates() ([]domain.State, error) {
	f, err := os.Open(b.File(StatesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no %s file", domain.ErrInvalidBundle, b.path, StatesFile)
		}
		return nil, fmt.Errorf("failed to open states: %w", err)
	}
	defer f.Close()

	// The States file shares the one-name-per-line format of arrangement manifests.
	names, err := arrangement.Decode(f)
	if err != nil {
		return nil, err
	}
	states := make([]domain.State, len(names))
	for i, n := range names {
		states[i] = domain.NewState(strings.TrimSpace(n))
	}
	return states, nil
}

// SuspendStateName returns the trimmed content of SuspendState, or "" if absent.
func (b *Bundle) SuspendStateName() (string, error) {
	text, err := b.ReadOptional(SuspendStateFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExpressionFile returns the file name of a transition's guard.
func ExpressionFile(stateName string, index int) string {
	return fmt.Sprintf("State_%s_Transition_%d.expr", stateName, index)
}

// Expression reads the guard text of a transition, trimmed of surrounding whitespace.
func (b *Bundle) Expression(stateName string, index int) (string, error) {
	text, err := b.ReadText(ExpressionFile(stateName, index))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExpressionFiles lists the guard files of a state in natural order
// (Transition_2 before Transition_10).
func (b *Bundle) ExpressionFiles(stateName string) ([]string, error) {
	matches, err := filepath.Glob(b.File(fmt.Sprintf("State_%s_Transition_*.expr", stateName)))
	if err != nil {
		return nil, err
	}
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Base(m)
	}
	natsort.Sort(files)
	return files, nil
}

// Sections reads a section->file mapping into Boilerplate. Missing files yield empty sections.
func (b *Bundle) Sections(files map[string]string) (domain.Boilerplate, error) {
	out := make(domain.Boilerplate, len(files))
	for section, name := range files {
		text, err := b.ReadOptional(name)
		if err != nil {
			return nil, err
		}
		out[section] = text
	}
	return out, nil
}

// Discover lists the machine bundles directly under dir in natural order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), Suffix) {
			names = append(names, strings.TrimSuffix(e.Name(), Suffix))
		}
	}
	natsort.Sort(names)
	return names, nil
}
