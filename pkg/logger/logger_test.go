package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, logrus.InfoLevel)

	log.Debug("hidden %d", 1)
	log.Info("session=%s opened", "s-1")
	log.WithField("component", "registry").Warn("evicted %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "session=s-1 opened")
	assert.Contains(t, out, "component=registry")
	assert.Contains(t, out, "level=warning")
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Debug("hello")
	require.NoError(t, log.Close())

	assert.FileExists(t, path)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}
