package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/larascan/domain"
)

func TestNewProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(false)
	assert.False(t, pm.IsInteractive())

	var _ domain.ProgressManager = pm
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}
	assert.False(t, pm.IsInteractive())

	task := pm.StartTask("parsing", 10)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}
	task.Increment(3)
	task.Describe("still parsing")
	task.Complete()
	pm.Close()
}

func TestProgressManagerImpl_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := &ProgressManagerImpl{writer: &buf}

	task := pm.StartTask("Parsing PHP files", 2)
	task.Increment(1)
	task.Increment(1)
	task.Complete()
	pm.Close()

	assert.True(t, pm.IsInteractive())
	assert.NotEmpty(t, buf.String())
}
