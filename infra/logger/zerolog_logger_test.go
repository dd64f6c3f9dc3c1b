package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("test", &buf, "debug", true)
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
}

func TestZerologLoggerLevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("scoring", &buf, "warn", false)
	l.Infof("dropped")
	l.Warnf("kept %d", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "scoring", rec["component"])
	assert.Equal(t, "kept 2", rec["message"])
	assert.Equal(t, "warn", rec["level"])
}

func TestConfigureWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crashlens.log")
	Configure(Options{Level: "info", File: path, MaxSizeMB: 1})
	defer Configure(Options{})

	New("file-test").Infof("hello file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
