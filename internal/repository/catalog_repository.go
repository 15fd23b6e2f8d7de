package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bocho8/chronos/internal/models"
)

// CatalogRepository reads the reference data the engine is built against:
// groups, subjects, teachers, time blocks and guidelines. The catalog is
// maintained elsewhere; this surface is read-only.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Snapshot loads the full reference set in one pass.
func (r *CatalogRepository) Snapshot(ctx context.Context) (models.Catalog, error) {
	var snap models.Catalog
	var err error

	if snap.Groups, err = r.ListGroups(ctx); err != nil {
		return models.Catalog{}, err
	}
	if snap.Subjects, err = r.ListSubjects(ctx); err != nil {
		return models.Catalog{}, err
	}
	if snap.Teachers, err = r.ListTeachers(ctx); err != nil {
		return models.Catalog{}, err
	}
	if snap.TimeBlocks, err = r.ListTimeBlocks(ctx); err != nil {
		return models.Catalog{}, err
	}
	if snap.Guidelines, err = r.ListGuidelines(ctx); err != nil {
		return models.Catalog{}, err
	}
	return snap, nil
}

// ListGroups returns all student groups ordered by name.
func (r *CatalogRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	const query = `SELECT id, name, level, created_at, updated_at FROM groups ORDER BY name ASC`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ListSubjects returns all subjects ordered by name.
func (r *CatalogRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name, weekly_hours, guideline_id, joint_group_id, created_at, updated_at FROM subjects ORDER BY name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListTeachers returns active teachers ordered by name.
func (r *CatalogRepository) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, full_name, email, active, created_at, updated_at FROM teachers WHERE active = TRUE ORDER BY full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindTeachers resolves a set of teacher ids preserving input order.
func (r *CatalogRepository) FindTeachers(ctx context.Context, ids []string) ([]models.Teacher, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, full_name, email, active, created_at, updated_at FROM teachers WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build teacher lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("find teachers: %w", err)
	}

	byID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}
	ordered := make([]models.Teacher, 0, len(teachers))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// ListTimeBlocks returns the blocks of the school day ordered by start time.
func (r *CatalogRepository) ListTimeBlocks(ctx context.Context) ([]models.TimeBlock, error) {
	const query = `SELECT id, label, start_time, end_time, position, created_at FROM time_blocks ORDER BY start_time ASC, position ASC`
	var blocks []models.TimeBlock
	if err := r.db.SelectContext(ctx, &blocks, query); err != nil {
		return nil, fmt.Errorf("list time blocks: %w", err)
	}
	return blocks, nil
}

// ListGuidelines returns the inspection guidelines.
func (r *CatalogRepository) ListGuidelines(ctx context.Context) ([]models.Guideline, error) {
	const query = `SELECT id, name, min_days, max_days, special_conditions, created_at FROM guidelines ORDER BY name ASC`
	var guidelines []models.Guideline
	if err := r.db.SelectContext(ctx, &guidelines, query); err != nil {
		return nil, fmt.Errorf("list guidelines: %w", err)
	}
	return guidelines, nil
}
