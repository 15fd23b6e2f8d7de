package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/engine"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

type availabilityStore interface {
	ListAll(ctx context.Context, exec sqlx.ExtContext) ([]models.AvailabilitySlot, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AvailabilitySlot, error)
	Upsert(ctx context.Context, slot *models.AvailabilitySlot) error
}

// AvailabilityService manages teacher availability overrides. Toggles are
// independent of assignments: marking a slot unavailable never removes a
// class already placed there, it only surfaces a warning on later checks.
type AvailabilityService struct {
	store     availabilityStore
	catalog   catalogSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService instantiates AvailabilityService.
func NewAvailabilityService(store availabilityStore, catalog catalogSource, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{store: store, catalog: catalog, validator: validate, logger: logger}
}

// Toggle records an availability override and reports the previous effective
// value. Toggling a slot to its current value is a no-op upsert.
func (s *AvailabilityService) Toggle(ctx context.Context, teacherID string, req dto.AvailabilityToggleRequest) (*dto.AvailabilityToggleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	day, err := models.ParseWeekday(req.Day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day of week")
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	catalog := engine.NewCatalog(snap)
	if _, ok := catalog.Teacher(teacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if _, ok := catalog.Block(req.BlockID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "time block not found")
	}

	existing, err := s.store.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	idx := engine.NewAvailabilityIndex(existing)
	previous := idx.Toggle(teacherID, day, req.BlockID, *req.Available)

	slot := &models.AvailabilitySlot{
		TeacherID: teacherID,
		Day:       day,
		BlockID:   req.BlockID,
		Available: *req.Available,
	}
	if err := s.store.Upsert(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}

	return &dto.AvailabilityToggleResult{
		TeacherID: teacherID,
		Day:       day,
		BlockID:   req.BlockID,
		Available: *req.Available,
		Previous:  previous,
	}, nil
}

// Matrix renders a teacher's full day-by-block availability. Slots without
// an override show as available.
func (s *AvailabilityService) Matrix(ctx context.Context, teacherID string) (*dto.AvailabilityMatrix, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	catalog := engine.NewCatalog(snap)
	if _, ok := catalog.Teacher(teacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	slots, err := s.store.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	idx := engine.NewAvailabilityIndex(slots)

	matrix := &dto.AvailabilityMatrix{TeacherID: teacherID}
	for _, day := range models.Weekdays() {
		row := dto.AvailabilityDay{Day: day}
		for _, block := range catalog.Blocks() {
			row.Blocks = append(row.Blocks, dto.AvailabilityCell{
				BlockID:   block.ID,
				Label:     block.Label,
				Available: idx.IsAvailable(teacherID, day, block.ID),
			})
		}
		matrix.Days = append(matrix.Days, row)
	}
	return matrix, nil
}
