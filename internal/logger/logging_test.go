package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "cli")
	l.SetLevel(log.ErrorLevel)

	l.Print("always shown")
	l.Info("hidden")

	out := buf.String()
	assert.Contains(t, out, "always shown")
	assert.Contains(t, out, "cli")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "srv", log.DebugLevel, false, false, log.JSONFormatter)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Equal(t, "srv", l.GetPrefix())

	l.Debug("loaded", "tags", 3)
	assert.Contains(t, buf.String(), `"tags":3`)
}
