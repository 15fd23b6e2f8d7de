package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bocho8/chronos/internal/models"
)

const availabilityColumns = "id, teacher_id, day_of_week, block_id, available, updated_at"

// AvailabilityRepository persists explicit availability overrides. Slots
// without a record default to available.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListAll loads every override, feeding the availability index. Pass a
// transaction to re-read inside the commit window.
func (r *AvailabilityRepository) ListAll(ctx context.Context, exec sqlx.ExtContext) ([]models.AvailabilitySlot, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf("SELECT %s FROM availability_slots", availabilityColumns)
	var slots []models.AvailabilitySlot
	if err := sqlx.SelectContext(ctx, exec, &slots, query); err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}

// ListByTeacher returns the overrides recorded for one teacher.
func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AvailabilitySlot, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_slots WHERE teacher_id = $1 ORDER BY day_of_week ASC, block_id ASC", availabilityColumns)
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, teacherID); err != nil {
		return nil, fmt.Errorf("list availability by teacher: %w", err)
	}
	return slots, nil
}

// Upsert records an override for a (teacher, day, block) slot.
func (r *AvailabilityRepository) Upsert(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	slot.UpdatedAt = time.Now().UTC()

	const query = `INSERT INTO availability_slots (id, teacher_id, day_of_week, block_id, available, updated_at)
		VALUES (:id, :teacher_id, :day_of_week, :block_id, :available, :updated_at)
		ON CONFLICT (teacher_id, day_of_week, block_id) DO UPDATE
		SET available = EXCLUDED.available,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("upsert availability slot: %w", err)
	}
	return nil
}
