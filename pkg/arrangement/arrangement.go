// Package arrangement reads and writes the manifest of an arrangement: the
// ordered list of machine names that run together, one name per line in a
// file called Machines.
package arrangement

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// ManifestFile is the fixed name of the manifest inside an arrangement directory.
const ManifestFile = "Machines"

// InvalidNameError reports a machine name that cannot be stored in a manifest.
type InvalidNameError struct {
	Index int
	Name  string
}

func (e *InvalidNameError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Sprintf("machine %d: empty name %q", e.Index, e.Name)
	}
	return fmt.Sprintf("machine %d: name %q contains a line break", e.Index, e.Name)
}

// Validate checks that every name can round-trip through a manifest.
// Decode skips blank lines, so whitespace-only names are rejected.
func Validate(names []string) error {
	for i, n := range names {
		if strings.TrimSpace(n) == "" || strings.ContainsAny(n, "\r\n") {
			return &InvalidNameError{Index: i, Name: n}
		}
	}
	return nil
}

// Encode writes one machine name per line, preserving order.
func Encode(w io.Writer, names []string) error {
	if err := Validate(names); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, n := range names {
		if _, err := bw.WriteString(n + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads machine names line by line. Blank lines are not entries.
func Decode(r io.Reader) ([]string, error) {
	names := make([]string, 0)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return names, nil
}

// Path returns the manifest path of the arrangement in dir.
func Path(dir string) string {
	return filepath.Join(dir, ManifestFile)
}

// Load reads the manifest of the arrangement in dir.
// A missing manifest is a *domain.MissingManifestError; an empty one yields an empty slice.
func Load(dir string) ([]string, error) {
	path := Path(dir)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.MissingManifestError{Path: path}
		}
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Save writes the manifest of the arrangement in dir, creating dir if needed.
func Save(dir string, names []string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, names); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure arrangement directory: %w", err)
	}
	if err := os.WriteFile(Path(dir), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
