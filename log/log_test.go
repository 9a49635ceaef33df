package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, want := range levelNames {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("debug")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	l := NewLogger(Info).WithNamespaceAppended("render")
	l.Verbose1f("hidden")
	l.Infof("shown %d", 1)
	l.WithNamespaceAppended("header").Errorf("also shown\n")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], ": [render] shown 1"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ": [render/header] also shown"), lines[1])
}

func TestNilLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	var l *Logger
	l.Verbose1f("hidden")
	l.Warnf("no namespace")

	assert.True(t, strings.HasSuffix(buf.String(), ": no namespace\n"), buf.String())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cexpr.log")
	require.NoError(t, OpenFile(path))

	NewLogger(Verbose3).Verbose3f("to the file")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}
