package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatList_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := FormatList(&buf, []string{"c", "cxx"}, func(f string) string {
		if f == "c" {
			return "LLFSM"
		}
		return ""
	})
	require.NoError(t, err)

	assert.Equal(t, "c       LLFSM\ncxx\n", buf.String())
}

func TestNewRenderer_Plain(t *testing.T) {
	render := NewRenderer(false)
	out, err := render("# Title\n")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", out)
}

func TestNewRenderer_Styled(t *testing.T) {
	render := NewRenderer(true)
	out, err := render("# Title\n\nbody text\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
	assert.NotContains(t, buf.String(), "\x1b[")
}
