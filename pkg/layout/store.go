package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the layout file inside a machine bundle.
const FileName = "Layout.yaml"

// FileStore persists layouts as YAML property lists inside bundles.
type FileStore struct {
	Codec PropertyListCodec
}

// NewFileStore returns a store using MapCodec.
func NewFileStore() *FileStore {
	return &FileStore{Codec: MapCodec{}}
}

// Path returns the layout file of the bundle at location.
func Path(location string) string {
	return filepath.Join(location, FileName)
}

// Save writes l into the bundle at location.
func (s *FileStore) Save(location string, l Layout) error {
	data, err := yaml.Marshal(s.Codec.Encode(l))
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(Path(location), data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// Load reads the layout of the bundle at location.
// A bundle without a layout yields an error wrapping fs.ErrNotExist.
func (s *FileStore) Load(location string) (Layout, error) {
	data, err := os.ReadFile(Path(location))
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	var plist map[string]any
	if err := yaml.Unmarshal(data, &plist); err != nil {
		return Layout{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if plist == nil {
		return Layout{}, nil
	}
	return s.Codec.Decode(plist)
}
