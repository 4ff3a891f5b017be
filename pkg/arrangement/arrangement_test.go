package arrangement_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Counters.arrangement")

	require.NoError(t, arrangement.Save(dir, []string{"A", "B", "C"}))

	data, err := os.ReadFile(filepath.Join(dir, arrangement.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC\n", string(data))

	loaded, err := arrangement.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, loaded)
}

func TestSave_NoDedupNoSort(t *testing.T) {
	dir := t.TempDir()
	names := []string{"C", "A", "C", "B"}
	require.NoError(t, arrangement.Save(dir, names))

	loaded, err := arrangement.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, names, loaded)
}

func TestLoad_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := arrangement.Load(dir)
	require.ErrorIs(t, err, domain.ErrMissingManifest)

	var missing *domain.MissingManifestError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, filepath.Join(dir, arrangement.ManifestFile), missing.Path)
}

func TestLoad_Empty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(arrangement.Path(dir), nil, 0644))

	loaded, err := arrangement.Load(dir)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"trailing newline", "A\nB\n", []string{"A", "B"}},
		{"no trailing newline", "A\nB", []string{"A", "B"}},
		{"blank trailing lines", "A\n\n\n", []string{"A"}},
		{"crlf", "A\r\nB\r\n", []string{"A", "B"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := arrangement.Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_InvalidNames(t *testing.T) {
	var buf bytes.Buffer

	err := arrangement.Encode(&buf, []string{"A", "B\nC"})
	var invalid *arrangement.InvalidNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)

	err = arrangement.Encode(&buf, []string{""})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.Index)

	err = arrangement.Encode(&buf, []string{"A", " \t", "B"})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)
	assert.Contains(t, invalid.Error(), "empty name")

	assert.Zero(t, buf.Len(), "nothing is written for an invalid list")
}

func TestSave_BlankNameRejected(t *testing.T) {
	dir := t.TempDir()

	err := arrangement.Save(dir, []string{"A", " ", "B"})
	var invalid *arrangement.InvalidNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)

	_, err = arrangement.Load(dir)
	assert.ErrorIs(t, err, domain.ErrMissingManifest, "a rejected list writes no manifest")

	names := []string{" A", "B ", "C"}
	require.NoError(t, arrangement.Save(dir, names))
	loaded, err := arrangement.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, names, loaded)
}
