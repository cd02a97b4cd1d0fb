package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessStatus(t *testing.T) {
	assert.Equal(t, StatusRunning, ProcessStatus(2))
	assert.Equal(t, StatusStopped, ProcessStatus(0))
}

func TestProcessIndicator(t *testing.T) {
	assert.Contains(t, ProcessIndicator(1), "running")
	assert.Contains(t, ProcessIndicator(0), "stopped")
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus(StatusSuccess, "up"), "up")
	assert.Contains(t, RenderStatus(StatusError, ""), "✗")
}
