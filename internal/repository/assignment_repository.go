package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bocho8/chronos/internal/models"
)

const assignmentColumns = "id, group_id, subject_id, teacher_id, day_of_week, block_id, created_at, updated_at"

// AssignmentRepository provides persistence for timetable assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns assignments with optional filtering and pagination.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error) {
	base := "FROM assignments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, strings.ToUpper(filter.Day))
	}
	if filter.BlockID != "" {
		conditions = append(conditions, fmt.Sprintf("block_id = $%d", len(args)+1))
		args = append(args, filter.BlockID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"day_of_week": true,
		"block_id":    true,
		"group_id":    true,
		"created_at":  true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "day_of_week"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", assignmentColumns, base, sortBy, order, size, offset)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	return assignments, total, nil
}

// ListAll loads the full assignment set the engine grid is built from.
// Pass a transaction to re-read inside the commit window.
func (r *AssignmentRepository) ListAll(ctx context.Context, exec sqlx.ExtContext) ([]models.Assignment, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf("SELECT %s FROM assignments", assignmentColumns)
	var assignments []models.Assignment
	if err := sqlx.SelectContext(ctx, exec, &assignments, query); err != nil {
		return nil, fmt.Errorf("list all assignments: %w", err)
	}
	return assignments, nil
}

// ListByGroup returns a group's assignments ordered by day/block.
func (r *AssignmentRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE group_id = $1 ORDER BY day_of_week ASC, block_id ASC", assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, groupID); err != nil {
		return nil, fmt.Errorf("list assignments by group: %w", err)
	}
	return assignments, nil
}

// ListByTeacher returns assignments taught by a teacher.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE teacher_id = $1 ORDER BY day_of_week ASC, block_id ASC", assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list assignments by teacher: %w", err)
	}
	return assignments, nil
}

// TeacherIDsBySubject lists distinct teachers currently assigned to a
// subject, feeding the auto-selection helper.
func (r *AssignmentRepository) TeacherIDsBySubject(ctx context.Context, subjectID string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM assignments WHERE subject_id = $1 ORDER BY teacher_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, subjectID); err != nil {
		return nil, fmt.Errorf("list teachers by subject: %w", err)
	}
	return ids, nil
}

// FindByID loads an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE id = $1", assignmentColumns)
	var a models.Assignment
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create stores a new assignment. Use a transaction to keep the insert
// inside the same commit window as the invariant re-check.
func (r *AssignmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, a *models.Assignment) error {
	if exec == nil {
		exec = r.db
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	const query = `INSERT INTO assignments (id, group_id, subject_id, teacher_id, day_of_week, block_id, created_at, updated_at) VALUES (:id, :group_id, :subject_id, :teacher_id, :day_of_week, :block_id, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, a); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an assignment record.
func (r *AssignmentRepository) Update(ctx context.Context, exec sqlx.ExtContext, a *models.Assignment) error {
	if exec == nil {
		exec = r.db
	}
	a.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET group_id = :group_id, subject_id = :subject_id, teacher_id = :teacher_id, day_of_week = :day_of_week, block_id = :block_id, updated_at = :updated_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, a); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	if exec == nil {
		exec = r.db
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// BeginTxx starts a transaction for validate-then-commit flows.
func (r *AssignmentRepository) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, opts)
}
