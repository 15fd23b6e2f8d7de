package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func TestGridPlaceAndLookups(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-hist", "t-y", models.Monday, "b-1"),
	)

	byTeacher, ok := grid.TeacherAt("t-x", models.Monday, "b-1")
	require.True(t, ok)
	assert.Equal(t, "a1", byTeacher.ID)

	byGroup, ok := grid.GroupAt("g-b", models.Monday, "b-1")
	require.True(t, ok)
	assert.Equal(t, "a2", byGroup.ID)

	_, ok = grid.TeacherAt("t-x", models.Tuesday, "b-1")
	assert.False(t, ok)

	cell := grid.Cell(models.Monday, "b-1")
	require.Len(t, cell, 2)
	assert.Equal(t, "a1", cell[0].ID)
	assert.Equal(t, "a2", cell[1].ID)
}

func TestGridPlaceNeverOverwrites(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"))

	err := grid.Place(assignment("a2", "g-b", "s-hist", "t-x", models.Monday, "b-1"))
	require.Error(t, err, "teacher slot already occupied")

	err = grid.Place(assignment("a3", "g-a", "s-hist", "t-y", models.Monday, "b-1"))
	require.Error(t, err, "group slot already occupied")

	assert.Equal(t, 1, grid.Len())
}

func TestGridRemoveUpdatesAllIndices(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"))

	require.True(t, grid.Remove("a1"))
	assert.False(t, grid.Remove("a1"), "second remove is a no-op")

	_, ok := grid.TeacherAt("t-x", models.Monday, "b-1")
	assert.False(t, ok)
	_, ok = grid.GroupAt("g-a", models.Monday, "b-1")
	assert.False(t, ok)
	assert.Empty(t, grid.Cell(models.Monday, "b-1"))

	// The vacated slot accepts a new placement.
	require.NoError(t, grid.Place(assignment("a2", "g-a", "s-hist", "t-x", models.Monday, "b-1")))
}

func TestGridFindByGroupSubjectOrdered(t *testing.T) {
	grid := testGrid(t,
		assignment("a3", "g-a", "s-math", "t-x", models.Wednesday, "b-1"),
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-2"),
		assignment("a2", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a4", "g-a", "s-hist", "t-y", models.Monday, "b-3"),
	)

	found := grid.FindByGroupSubject("g-a", "s-math")
	require.Len(t, found, 3)
	assert.Equal(t, []string{"a2", "a1", "a3"}, []string{found[0].ID, found[1].ID, found[2].ID})
}

func TestGridTeachersForSubject(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-math", "t-y", models.Monday, "b-2"),
		assignment("a3", "g-b", "s-hist", "t-y", models.Tuesday, "b-1"),
	)

	assert.Equal(t, []string{"t-x", "t-y"}, grid.TeachersForSubject("s-math"))
	assert.Empty(t, grid.TeachersForSubject("s-art"))
}

func TestGridCloneIsIndependent(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"))

	clone := grid.Clone()
	require.NoError(t, clone.Place(assignment("a2", "g-a", "s-math", "t-x", models.Tuesday, "b-1")))
	require.True(t, clone.Remove("a1"))

	assert.Equal(t, 1, grid.Len())
	_, ok := grid.TeacherAt("t-x", models.Monday, "b-1")
	assert.True(t, ok, "original grid untouched by clone mutations")
	_, ok = grid.TeacherAt("t-x", models.Tuesday, "b-1")
	assert.False(t, ok)
}

func TestNewGridRejectsCorruptedOccupancy(t *testing.T) {
	_, err := NewGrid([]models.Assignment{
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-hist", "t-x", models.Monday, "b-1"),
	})
	require.Error(t, err)
}
