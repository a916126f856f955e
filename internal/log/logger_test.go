package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(newLogger().Out)
		SetDebug(false)
	})
	return buf
}

func TestInfoLevelByDefault(t *testing.T) {
	buf := capture(t)

	Debugf("hidden %d", 1)
	Info("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
}

func TestSetDebug(t *testing.T) {
	buf := capture(t)

	SetDebug(true)
	Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")

	buf.Reset()
	SetDebug(false)
	Debugf("hidden again")
	assert.Empty(t, buf.String())
}

func TestWithFields(t *testing.T) {
	buf := capture(t)

	With(F("path", "/tmp/a.png"), F("index", 3)).Info("showing image")

	out := buf.String()
	assert.Contains(t, out, "showing image")
	assert.Contains(t, out, "path=")
	assert.Contains(t, out, "/tmp/a.png")
	assert.Contains(t, out, "index=3")
}

func TestWarnAndError(t *testing.T) {
	buf := capture(t)

	Warnf("watch error: %v", "boom")
	Errorf("display failed: %v", "crash")

	out := buf.String()
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "watch error: boom")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "display failed: crash")
}
