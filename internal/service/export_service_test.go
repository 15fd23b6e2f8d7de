package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

func newExportService(assignments []models.Assignment) *ExportService {
	store := &mockPlacementStoreNoDB{assignments: assignments}
	return NewExportService(store, &mockCatalogSource{snapshot: serviceCatalog()}, zap.NewNop())
}

// mockPlacementStoreNoDB serves the export-facing reads without a sqlmock
// backing, which exports never need.
type mockPlacementStoreNoDB struct {
	assignments []models.Assignment
}

func (m *mockPlacementStoreNoDB) ListByGroup(_ context.Context, groupID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.GroupID == groupID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockPlacementStoreNoDB) ListByTeacher(_ context.Context, teacherID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestExportGroupTimetableCSV(t *testing.T) {
	svc := newExportService([]models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
		{ID: "as-2", GroupID: "g-1", SubjectID: "s-2", TeacherID: "t-2", Day: models.Wednesday, BlockID: "b-2"},
	})

	payload, title, err := svc.GroupTimetableCSV(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Contains(t, title, "1A")

	content := string(payload)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4, "header plus one row per time block")
	assert.Contains(t, lines[0], "Bloque")
	assert.Contains(t, lines[0], "MONDAY")
	assert.Contains(t, content, "Matemática (Laura Pérez)")
	assert.Contains(t, content, "Arte (Diego Silva)")
}

func TestExportGroupTimetablePDF(t *testing.T) {
	svc := newExportService([]models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
	})

	payload, _, err := svc.GroupTimetablePDF(context.Background(), "g-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportTeacherTimetablePDF(t *testing.T) {
	svc := newExportService([]models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Friday, BlockID: "b-3"},
	})

	payload, title, err := svc.TeacherTimetablePDF(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Contains(t, title, "Laura Pérez")
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportUnknownGroup(t *testing.T) {
	svc := newExportService(nil)

	_, _, err := svc.GroupTimetableCSV(context.Background(), "g-missing")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}
