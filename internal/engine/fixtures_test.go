package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func strPtr(s string) *string { return &s }

func testCatalog() *Catalog {
	return NewCatalog(models.Catalog{
		Groups: []models.Group{
			{ID: "g-a", Name: "1A", Level: "1"},
			{ID: "g-b", Name: "1B", Level: "1"},
		},
		Teachers: []models.Teacher{
			{ID: "t-x", FullName: "Teacher X", Active: true},
			{ID: "t-y", FullName: "Teacher Y", Active: true},
			{ID: "t-z", FullName: "Teacher Z", Active: true},
		},
		Subjects: []models.Subject{
			{ID: "s-math", Name: "Math", WeeklyHours: 4, GuidelineID: strPtr("p-wide")},
			{ID: "s-hist", Name: "History", WeeklyHours: 3, GuidelineID: strPtr("p-tight")},
			{ID: "s-art", Name: "Art", WeeklyHours: 2},
		},
		Guidelines: []models.Guideline{
			{ID: "p-wide", Name: "Pauta amplia", MinDays: 2, MaxDays: 5},
			{ID: "p-tight", Name: "Pauta acotada", MinDays: 2, MaxDays: 3},
		},
		TimeBlocks: []models.TimeBlock{
			{ID: "b-2", Label: "Bloque 2", StartTime: "09:00", EndTime: "09:45", Position: 2},
			{ID: "b-1", Label: "Bloque 1", StartTime: "08:00", EndTime: "08:45", Position: 1},
			{ID: "b-3", Label: "Bloque 3", StartTime: "10:00", EndTime: "10:45", Position: 3},
		},
	})
}

func testGrid(t *testing.T, assignments ...models.Assignment) *Grid {
	t.Helper()
	grid, err := NewGrid(assignments)
	require.NoError(t, err)
	return grid
}

func assignment(id, groupID, subjectID, teacherID string, day models.Weekday, blockID string) models.Assignment {
	return models.Assignment{
		ID:        id,
		GroupID:   groupID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Day:       day,
		BlockID:   blockID,
	}
}
