package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bocho8/chronos/internal/models"
)

// ObservationRepository persists advisory teacher notes and the predefined
// note catalog.
type ObservationRepository struct {
	db *sqlx.DB
}

// NewObservationRepository constructs the repository.
func NewObservationRepository(db *sqlx.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// ListByTeacher returns a teacher's observations, newest first.
func (r *ObservationRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Observation, error) {
	const query = `SELECT id, teacher_id, predefined_id, text, created_at FROM observations WHERE teacher_id = $1 ORDER BY created_at DESC`
	var observations []models.Observation
	if err := r.db.SelectContext(ctx, &observations, query, teacherID); err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return observations, nil
}

// Create stores a new observation.
func (r *ObservationRepository) Create(ctx context.Context, o *models.Observation) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO observations (id, teacher_id, predefined_id, text, created_at) VALUES (:id, :teacher_id, :predefined_id, :text, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, o); err != nil {
		return fmt.Errorf("create observation: %w", err)
	}
	return nil
}

// Delete removes an observation by id.
func (r *ObservationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM observations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete observation: %w", err)
	}
	return nil
}

// ListPredefined returns the predefined observation catalog.
func (r *ObservationRepository) ListPredefined(ctx context.Context) ([]models.PredefinedObservation, error) {
	const query = `SELECT id, label, created_at FROM predefined_observations ORDER BY label ASC`
	var predefined []models.PredefinedObservation
	if err := r.db.SelectContext(ctx, &predefined, query); err != nil {
		return nil, fmt.Errorf("list predefined observations: %w", err)
	}
	return predefined, nil
}

// FindPredefinedByID resolves one predefined entry.
func (r *ObservationRepository) FindPredefinedByID(ctx context.Context, id string) (*models.PredefinedObservation, error) {
	const query = `SELECT id, label, created_at FROM predefined_observations WHERE id = $1`
	var p models.PredefinedObservation
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsurePredefined seeds a predefined entry if it does not exist yet and
// reports whether a row was inserted. Used by startup bootstrap, guarded by
// a label lookup so reruns are idempotent.
func (r *ObservationRepository) EnsurePredefined(ctx context.Context, label string) (bool, error) {
	var existing string
	err := r.db.GetContext(ctx, &existing, `SELECT id FROM predefined_observations WHERE label = $1 LIMIT 1`, label)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("lookup predefined observation: %w", err)
	}

	p := models.PredefinedObservation{ID: uuid.NewString(), Label: label, CreatedAt: time.Now().UTC()}
	const query = `INSERT INTO predefined_observations (id, label, created_at) VALUES (:id, :label, :created_at) ON CONFLICT (label) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, &p); err != nil {
		return false, fmt.Errorf("seed predefined observation: %w", err)
	}
	return true, nil
}
