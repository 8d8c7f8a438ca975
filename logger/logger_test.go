package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Equal(t, os.Stderr, l.Out)
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(Config{Format: "xml"})
	assert.ErrorContains(t, err, "invalid log format")
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "study.log")
	l, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	l.WithField("symbol", "ES").Debug("visible range changed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "visible range changed", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "ES", entry["symbol"])
	assert.Contains(t, entry, "timestamp")

	require.NoError(t, Close(l))
	assert.Equal(t, os.Stderr, l.Out)
	// closing twice is a no-op once the output is back on stderr
	assert.NoError(t, Close(l))
}

func TestCloseLeavesStandardStreams(t *testing.T) {
	l, err := New(Config{Output: "stdout"})
	require.NoError(t, err)
	require.NoError(t, Close(l))
	assert.Equal(t, os.Stdout, l.Out)
}
