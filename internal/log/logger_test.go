package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden debug %d", 1)
	assert.NotContains(t, buf.String(), "hidden debug")

	Warn("visible warning")
	assert.Contains(t, buf.String(), "visible warning")
	buf.Reset()

	SetVerbose(true)
	Debug("shown debug %s", "msg")
	assert.Contains(t, buf.String(), "shown debug msg")
	buf.Reset()

	Error("move failed: %v", assert.AnError)
	assert.Contains(t, buf.String(), "move failed")
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(true)
	WithField("path", "/tmp/a.txt").Debug("skipping resolved file")
	assert.Contains(t, buf.String(), "path=/tmp/a.txt")
}
