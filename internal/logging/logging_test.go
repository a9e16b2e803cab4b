package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_InfoLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "INFO")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("details")
	_ = log.Sync()

	assert.Contains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), "mpfmt")
}
