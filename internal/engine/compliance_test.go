package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func TestComplianceHoursBelowTarget(t *testing.T) {
	// Math targets 4 weekly hours under a min-2/max-5 guideline; only two
	// hours on two days are placed.
	grid := testGrid(t,
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-math", "t-x", models.Tuesday, "b-1"),
	)
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	report, conflicts := det.Compliance("g-a", "s-math", nil, "")

	assert.Equal(t, []models.Weekday{models.Monday, models.Tuesday}, report.DaysUsed)
	assert.Equal(t, 2, report.HoursAssigned)
	require.NotNil(t, report.GuidelineID)
	assert.Equal(t, "p-wide", *report.GuidelineID)

	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictHoursBelowTarget, conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, conflicts[0].Severity)
}

func TestComplianceDayBounds(t *testing.T) {
	catalog := testCatalog()

	t.Run("within bounds yields no error", func(t *testing.T) {
		grid := testGrid(t,
			assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
			assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
		)
		det := NewDetector(catalog, grid, NewAvailabilityIndex(nil))

		_, conflicts := det.Compliance("g-a", "s-hist", nil, "")
		for _, c := range conflicts {
			assert.NotEqual(t, models.SeverityError, c.Severity)
		}
	})

	t.Run("four days exceeds max of three", func(t *testing.T) {
		grid := testGrid(t,
			assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
			assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
			assignment("a3", "g-a", "s-hist", "t-y", models.Wednesday, "b-1"),
			assignment("a4", "g-a", "s-hist", "t-y", models.Thursday, "b-1"),
		)
		det := NewDetector(catalog, grid, NewAvailabilityIndex(nil))

		_, conflicts := det.Compliance("g-a", "s-hist", nil, "")
		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictMaxDaysExceeded, conflicts[0].Type)
		assert.Equal(t, models.SeverityError, conflicts[0].Severity)
	})
}

func TestComplianceExactTargetIsInfo(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-hist", "t-y", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-hist", "t-y", models.Tuesday, "b-1"),
		assignment("a3", "g-a", "s-hist", "t-y", models.Wednesday, "b-1"),
	)
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	report, conflicts := det.Compliance("g-a", "s-hist", nil, "")

	assert.Equal(t, 3, report.HoursAssigned)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictCompliant, conflicts[0].Type)
	assert.Equal(t, models.SeverityInfo, conflicts[0].Severity)
}

func TestComplianceNoGuideline(t *testing.T) {
	grid := testGrid(t, assignment("a1", "g-a", "s-art", "t-x", models.Monday, "b-1"))
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	report, conflicts := det.Compliance("g-a", "s-art", nil, "")

	assert.Nil(t, report.GuidelineID)
	assert.Empty(t, conflicts)
	assert.Equal(t, 1, report.HoursAssigned)
}

func TestComplianceIncludesCandidateEffect(t *testing.T) {
	det := NewDetector(testCatalog(), testGrid(t), NewAvailabilityIndex(nil))

	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-math", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-1",
	}
	report, conflicts := det.Compliance("g-a", "s-math", &cand, "")

	assert.Equal(t, []models.Weekday{models.Monday}, report.DaysUsed)
	assert.Equal(t, 1, report.HoursAssigned)

	require.Len(t, conflicts, 2)
	assert.Equal(t, models.ConflictMinDaysNotMet, conflicts[0].Type)
	assert.Equal(t, models.ConflictHoursBelowTarget, conflicts[1].Type)
}

func TestComplianceExcludesEditedAssignment(t *testing.T) {
	grid := testGrid(t,
		assignment("a1", "g-a", "s-math", "t-x", models.Monday, "b-1"),
		assignment("a2", "g-a", "s-math", "t-x", models.Tuesday, "b-1"),
	)
	det := NewDetector(testCatalog(), grid, NewAvailabilityIndex(nil))

	// Moving a2 from Tuesday to Monday: the old slot must not count twice.
	cand := Candidate{
		GroupID: "g-a", SubjectID: "s-math", TeacherID: "t-x",
		Day: models.Monday, BlockID: "b-2",
	}
	report, _ := det.Compliance("g-a", "s-math", &cand, "a2")

	assert.Equal(t, []models.Weekday{models.Monday}, report.DaysUsed)
	assert.Equal(t, 2, report.HoursAssigned)
}
