package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/bocho8/chronos/internal/models"
)

func newAvailabilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAvailabilityRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "day_of_week", "block_id", "available", "updated_at"}).
		AddRow("av-1", "t-1", "MONDAY", "b-1", false, time.Now()).
		AddRow("av-2", "t-1", "TUESDAY", "b-2", true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_slots WHERE teacher_id = $1")).
		WithArgs("t-1").
		WillReturnRows(rows)

	slots, err := repo.ListByTeacher(context.Background(), "t-1")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.False(t, slots[0].Available)
	require.Equal(t, models.Tuesday, slots[1].Day)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availability_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.AvailabilitySlot{
		TeacherID: "t-1",
		Day:       models.Wednesday,
		BlockID:   "b-2",
		Available: false,
	}
	require.NoError(t, repo.Upsert(context.Background(), slot))
	require.NotEmpty(t, slot.ID)
	require.False(t, slot.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListAllUsesTx(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_slots")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "day_of_week", "block_id", "available", "updated_at"}).
			AddRow("av-1", "t-1", "MONDAY", "b-1", false, time.Now()))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	slots, err := repo.ListAll(context.Background(), tx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
