package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerTo(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		NewLoggerTo(&buf, "info", "json").Info("hello", "key", "value")

		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"key":"value"`)
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		NewLoggerTo(&buf, "info", "text").Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, "warn", "json")

		logger.Info("dropped")
		logger.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("unknown values default to info json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, "loud", "yaml")

		logger.Debug("dropped")
		logger.Info("kept")

		assert.Contains(t, buf.String(), `"msg":"kept"`)
		assert.NotContains(t, buf.String(), "dropped")
	})
}
