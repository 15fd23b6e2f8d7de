package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func TestSuggestFreeSlotsRankedByDayThenBlock(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-b", "s-art", "t-x", models.Monday, "b-1"))
	sug := NewSuggester(testCatalog(), grid, NewAvailabilityIndex(nil))

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}
	conflict := models.Conflict{Type: models.ConflictTeacherDoubleBooked, Severity: models.SeverityError}

	suggestions := sug.ForConflict(cand, conflict, 3)
	require.Len(t, suggestions, 3)
	assert.Equal(t, models.Monday, suggestions[0].Day)
	assert.Equal(t, "b-2", suggestions[0].BlockID)
	assert.Equal(t, models.Monday, suggestions[1].Day)
	assert.Equal(t, "b-3", suggestions[1].BlockID)
	assert.Equal(t, models.Tuesday, suggestions[2].Day)
	assert.Equal(t, "b-1", suggestions[2].BlockID)
}

func TestSuggestSkipsOccupiedSlots(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-b", "s-art", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-art", "t-x", models.Monday, "b-2"),
		assignment("a3", "g-a", "s-hist", "t-y", models.Monday, "b-3"),
	)
	sug := NewSuggester(testCatalog(), grid, NewAvailabilityIndex(nil))

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}
	conflict := models.Conflict{Type: models.ConflictGroupDoubleBooked, Severity: models.SeverityError}

	suggestions := sug.ForConflict(cand, conflict, 2)
	// Monday is fully blocked: b-1 is the candidate slot, b-2 busy for the
	// teacher, b-3 busy for the group.
	require.Len(t, suggestions, 2)
	assert.Equal(t, models.Tuesday, suggestions[0].Day)
	assert.Equal(t, "b-1", suggestions[0].BlockID)
}

func TestSuggestUnavailableRestrictedScan(t *testing.T) {
	avail := NewAvailabilityIndex([]models.AvailabilitySlot{
		{TeacherID: "t-x", Day: models.Monday, BlockID: "b-1", Available: false},
		{TeacherID: "t-x", Day: models.Monday, BlockID: "b-2", Available: false},
	})
	sug := NewSuggester(testCatalog(), testGrid(t), avail)

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}
	conflict := models.Conflict{Type: models.ConflictTeacherUnavailable, Severity: models.SeverityWarning}

	suggestions := sug.ForConflict(cand, conflict, 1)
	require.Len(t, suggestions, 1)
	assert.Equal(t, models.Monday, suggestions[0].Day)
	assert.Equal(t, "b-3", suggestions[0].BlockID, "unavailable blocks are skipped")
}

func TestSuggestConsolidationOnUsedDays(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
	)
	sug := NewSuggester(testCatalog(), grid, NewAvailabilityIndex(nil))

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-hist", TeacherID: "t-y",
		Day: models.Friday, BlockID: "b-1",
	}
	conflict := models.Conflict{Type: models.ConflictMaxDaysExceeded, Severity: models.SeverityError}

	suggestions := sug.ForConflict(cand, conflict, 10)
	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.Contains(t, []models.Weekday{models.Monday, models.Tuesday}, s.Day,
			"only days the subject already uses are proposed")
	}
	assert.Equal(t, models.Monday, suggestions[0].Day)
	assert.Equal(t, "b-2", suggestions[0].BlockID)
}

func TestSuggestAlternateTeachers(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-b", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-b", "s-math", "t-y", models.Tuesday, "b-1"),
		assignment("a3", "g-b", "s-math", "t-z", models.Wednesday, "b-1"),
	)
	avail := NewAvailabilityIndex([]models.AvailabilitySlot{
		{TeacherID: "t-z", Day: models.Monday, BlockID: "b-1", Available: false},
	})
	sug := NewSuggester(testCatalog(), grid, avail)

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-math", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}

	alternates := sug.alternateTeachers(cand, 5)
	require.Len(t, alternates, 1, "t-z is unavailable, t-x is the candidate")
	assert.Equal(t, "t-y", alternates[0].TeacherID)
	assert.Contains(t, alternates[0].Message, "Teacher Y")
}

func TestSuggestBoundsAndDefaults(t *testing.T) {
	sug := NewSuggester(testCatalog(), testGrid(t), NewAvailabilityIndex(nil))
	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-art", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}
	conflict := models.Conflict{Type: models.ConflictTeacherDoubleBooked, Severity: models.SeverityError}

	assert.Len(t, sug.ForConflict(cand, conflict, 0), DefaultSuggestionLimit)
	assert.Len(t, sug.ForConflict(cand, conflict, 2), 2)

	attached := sug.Attach(cand, []models.Conflict{conflict}, 2)
	require.Len(t, attached, 1)
	assert.Len(t, attached[0].Suggestions, 2)
}
