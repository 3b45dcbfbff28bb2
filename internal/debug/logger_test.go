package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer

	InitWriter(true, &buf)
	t.Cleanup(func() { InitWriter(false, &bytes.Buffer{}) })

	assert.True(t, Enabled())
	Debug("configured", "kind", "postgres")
	assert.Contains(t, buf.String(), "kind=postgres")

	buf.Reset()
	InitWriter(false, &buf)
	assert.False(t, Enabled())
	Debug("hidden")
	Warn("hidden too")
	assert.Empty(t, buf.String())

	Error("shown")
	assert.Contains(t, buf.String(), "shown")
}
