package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func TestDetectTeacherDoubleBooking(t *testing.T) {
	// Teacher X already placed Monday/Block-1 for group A; candidate puts
	// the same teacher in group B at the same slot.
	grid := testGrid(t, assignment("a1", "g-a", "s-art", "t-x", models.Monday, "b-1"))
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	conflicts := det.Detect(Candidate{
		GroupID: "g-b", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}, "")

	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTeacherDoubleBooked, conflicts[0].Type)
	assert.Equal(t, models.SeverityError, conflicts[0].Severity)
}

func TestDetectTeacherUnavailable(t *testing.T) {
	avail := NewAvailabilityIndex([]models.AvailabilitySlot{
		{TeacherID: "t-y", Day: models.Wednesday, BlockID: "b-2", Available: false},
	})
	det := NewDetector(testCatalog(), testGrid(t), avail)

	conflicts := det.Detect(Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-y",
		Day: models.Wednesday, BlockID: "b-2",
	}, "")

	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTeacherUnavailable, conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, conflicts[0].Severity)
}

func TestDetectFixedOrdering(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-art", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-art", "t-y", models.Monday, "b-1"),
	)
	avail := NewAvailabilityIndex([]models.AvailabilitySlot{
		{TeacherID: "t-y", Day: models.Monday, BlockID: "b-1", Available: false},
	})
	det := NewDetector(testCatalog(), grid, avail)

	// Candidate collides with teacher t-y (busy in g-b), with group g-a
	// (occupied by a1), and hits the availability override.
	conflicts := det.Detect(Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-y",
		Day: models.Monday, BlockID: "b-1",
	}, "")

	require.Len(t, conflicts, 3)
	assert.Equal(t, models.ConflictTeacherDoubleBooked, conflicts[0].Type)
	assert.Equal(t, models.ConflictGroupDoubleBooked, conflicts[1].Type)
	assert.Equal(t, models.ConflictTeacherUnavailable, conflicts[2].Type)
}

func TestDetectExcludeSelf(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-a", "s-art", "t-x", models.Monday, "b-1"))
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	// Editing a1 back into the slot it already occupies must not report
	// double bookings against itself.
	conflicts := det.Detect(Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}, "a1")

	assert.Empty(t, conflicts)
}

func TestDetectIsIdempotent(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
	)
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))
	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-hist", TeacherID: "t-y",
		Day: models.Monday, BlockID: "b-2",
	}

	first := det.Detect(cand, "")
	second := det.Detect(cand, "")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, grid.Len(), "detection never mutates the grid")
}

func TestDetectGuidelineMaxDaysBlocks(t *testing.T) {
	// History is bound to a max-3-days guideline and already spans three
	// days; a candidate on a fourth day must be blocked.
	grid := testGrid(t,
		assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
		assignment("a3", "g-a", "s-hist", "t-y", models.Wednesday, "b-1"),
	)
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	conflicts := det.Detect(Candidate{
		GroupID: "g-a", SubjectID: "s-hist", TeacherID: "t-y",
		Day: models.Thursday, BlockID: "b-1",
	}, "")

	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictMaxDaysExceeded, conflicts[0].Type)
	assert.Equal(t, models.SeverityError, conflicts[0].Severity)
	assert.True(t, models.AnyBlocking(conflicts, false))
}

func TestDetectCleanCandidateIsEmpty(t *testing.T) {
	det := NewDetector(testCatalog(), testGrid(t), NewAvailabilityIndex(nil))

	conflicts := det.Detect(Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Friday, BlockID: "b-3",
	}, "")

	assert.Empty(t, conflicts)
}
