package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

func newBulkService(store *mockPlacementStore, metrics *mockRecorder) *BulkService {
	avail := &mockAvailabilitySource{}
	catalog := &mockCatalogSource{snapshot: serviceCatalog()}
	placements := NewPlacementService(store, avail, catalog, nil, nil, zap.NewNop(), false, 3)
	var recorder bulkRecorder
	if metrics != nil {
		recorder = metrics
	}
	return NewBulkService(store, avail, catalog, placements, recorder, nil, zap.NewNop(), false)
}

func TestBulkDeleteIdempotent(t *testing.T) {
	existing := []models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
	}
	store, mock, cleanup := newMockPlacementStore(t, existing)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := newBulkService(store, nil)
	result, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpDelete,
		AssignmentIDs: []string{"as-1", "as-missing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"as-1"}, result.Committed)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "as-missing", result.Rejected[0].ID)
	assert.Empty(t, result.Rejected[0].Conflicts)
	assert.NotEmpty(t, result.Rejected[0].Reason)
	assert.Equal(t, []string{"as-1"}, store.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCopyCatchesIntraBatchCollision(t *testing.T) {
	existing := []models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
		{ID: "as-2", GroupID: "g-2", SubjectID: "s-2", TeacherID: "t-1", Day: models.Monday, BlockID: "b-2"},
	}
	store, mock, cleanup := newMockPlacementStore(t, existing)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()

	metrics := &mockRecorder{}
	svc := newBulkService(store, metrics)

	// Both copies land on the same slot with the same teacher: the first is
	// applied provisionally, so the second collides with it.
	result, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpCopy,
		AssignmentIDs: []string{"as-1", "as-2"},
		Target:        &dto.BulkTarget{Day: "TUESDAY", BlockID: "b-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"as-1"}, result.Committed)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "as-2", result.Rejected[0].ID)
	require.NotEmpty(t, result.Rejected[0].Conflicts)
	assert.Equal(t, models.ConflictTeacherDoubleBooked, result.Rejected[0].Conflicts[0].Type)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.Tuesday, store.created[0].Day)
	assert.NotEqual(t, "as-1", store.created[0].ID)
	assert.Equal(t, []string{"copy:committed", "copy:rejected"}, metrics.bulk)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkAtomicAbortsOnConflict(t *testing.T) {
	existing := []models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
		{ID: "as-2", GroupID: "g-2", SubjectID: "s-2", TeacherID: "t-1", Day: models.Monday, BlockID: "b-2"},
	}
	store, mock, cleanup := newMockPlacementStore(t, existing)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := newBulkService(store, nil)
	result, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpCopy,
		AssignmentIDs: []string{"as-1", "as-2"},
		Target:        &dto.BulkTarget{Day: "TUESDAY", BlockID: "b-1"},
		Atomic:        true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Committed)
	require.Len(t, result.Rejected, 2, "clean items are reported too when the batch aborts")

	byID := map[string]dto.BulkRejection{}
	for _, r := range result.Rejected {
		byID[r.ID] = r
	}
	require.NotEmpty(t, byID["as-2"].Conflicts)
	assert.Equal(t, models.ConflictTeacherDoubleBooked, byID["as-2"].Conflicts[0].Type)
	assert.Empty(t, byID["as-1"].Conflicts)
	assert.NotEmpty(t, byID["as-1"].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkMoveWithinOwnSlot(t *testing.T) {
	existing := []models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
	}
	store, mock, cleanup := newMockPlacementStore(t, existing)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := newBulkService(store, nil)

	// Moving onto the source's own slot must not self-conflict: the vacated
	// slot is excluded from detection.
	result, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpMove,
		AssignmentIDs: []string{"as-1"},
		Target:        &dto.BulkTarget{Day: "MONDAY", BlockID: "b-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"as-1"}, result.Committed)
	assert.Empty(t, result.Rejected)
	require.Len(t, store.updated, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkMoveToAnotherGroup(t *testing.T) {
	existing := []models.Assignment{
		{ID: "as-1", GroupID: "g-1", SubjectID: "s-1", TeacherID: "t-1", Day: models.Monday, BlockID: "b-1"},
	}
	store, mock, cleanup := newMockPlacementStore(t, existing)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := newBulkService(store, nil)
	result, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpMove,
		AssignmentIDs: []string{"as-1"},
		Target:        &dto.BulkTarget{GroupID: "g-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"as-1"}, result.Committed)
	require.Len(t, store.updated, 1)
	assert.Equal(t, "g-2", store.updated[0].GroupID)
	assert.Equal(t, models.Monday, store.updated[0].Day)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCopyRequiresTarget(t *testing.T) {
	store, mock, cleanup := newMockPlacementStore(t, nil)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := newBulkService(store, nil)
	_, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     dto.BulkOpCopy,
		AssignmentIDs: []string{"as-1"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkRejectsUnknownOperation(t *testing.T) {
	store, _, cleanup := newMockPlacementStore(t, nil)
	defer cleanup()

	svc := newBulkService(store, nil)
	_, err := svc.Execute(context.Background(), dto.BulkRequest{
		Operation:     "merge",
		AssignmentIDs: []string{"as-1"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
