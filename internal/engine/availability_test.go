package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bocho8/chronos/internal/models"
)

func TestAvailabilityDefaultsToTrue(t *testing.T) {
	idx := NewAvailabilityIndex(nil)
	assert.True(t, idx.IsAvailable("t-x", models.Monday, "b-1"))
}

func TestAvailabilityOverrides(t *testing.T) {
	idx := NewAvailabilityIndex([]models.AvailabilitySlot{
		{TeacherID: "t-y", Day: models.Wednesday, BlockID: "b-2", Available: false},
		{TeacherID: "t-y", Day: models.Wednesday, BlockID: "b-3", Available: true},
	})

	assert.False(t, idx.IsAvailable("t-y", models.Wednesday, "b-2"))
	assert.True(t, idx.IsAvailable("t-y", models.Wednesday, "b-3"))
	assert.True(t, idx.IsAvailable("t-y", models.Thursday, "b-2"), "other slots unaffected")
	assert.True(t, idx.IsAvailable("t-x", models.Wednesday, "b-2"), "other teachers unaffected")
}

func TestAvailabilityToggleReturnsPrevious(t *testing.T) {
	idx := NewAvailabilityIndex(nil)

	prev := idx.Toggle("t-x", models.Monday, "b-1", false)
	assert.True(t, prev, "default was available")
	assert.False(t, idx.IsAvailable("t-x", models.Monday, "b-1"))

	prev = idx.Toggle("t-x", models.Monday, "b-1", true)
	assert.False(t, prev)
	assert.True(t, idx.IsAvailable("t-x", models.Monday, "b-1"))
}

func TestAvailabilityCloneIsIndependent(t *testing.T) {
	idx := NewAvailabilityIndex(nil)
	clone := idx.Clone()
	clone.Toggle("t-x", models.Friday, "b-1", false)

	assert.True(t, idx.IsAvailable("t-x", models.Friday, "b-1"))
	assert.False(t, clone.IsAvailable("t-x", models.Friday, "b-1"))
}
