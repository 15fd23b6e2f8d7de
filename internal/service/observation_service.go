package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/engine"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

type observationStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Observation, error)
	Create(ctx context.Context, o *models.Observation) error
	Delete(ctx context.Context, id string) error
	ListPredefined(ctx context.Context) ([]models.PredefinedObservation, error)
	FindPredefinedByID(ctx context.Context, id string) (*models.PredefinedObservation, error)
	EnsurePredefined(ctx context.Context, label string) (bool, error)
}

// Seed labels for the predefined observation catalog. "Otro" is the
// free-text sentinel.
var defaultPredefinedObservations = []string{
	"Prefiere horas consecutivas",
	"Evitar primera hora",
	"Evitar última hora",
	"Disponible para suplencias",
	models.OtherObservationLabel,
}

// ObservationService manages advisory teacher notes. Notes never enter
// conflict arithmetic; they are context shown next to the schedule.
type ObservationService struct {
	store     observationStore
	catalog   catalogSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewObservationService instantiates ObservationService.
func NewObservationService(store observationStore, catalog catalogSource, validate *validator.Validate, logger *zap.Logger) *ObservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObservationService{store: store, catalog: catalog, validator: validate, logger: logger}
}

// EnsureDefaults seeds the predefined catalog. Safe to run on every startup.
func (s *ObservationService) EnsureDefaults(ctx context.Context) error {
	for _, label := range defaultPredefinedObservations {
		created, err := s.store.EnsurePredefined(ctx, label)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info("seeded predefined observation", zap.String("label", label))
		}
	}
	return nil
}

// ListPredefined returns the predefined note catalog.
func (s *ObservationService) ListPredefined(ctx context.Context) ([]models.PredefinedObservation, error) {
	predefined, err := s.store.ListPredefined(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list predefined observations")
	}
	return predefined, nil
}

// ListByTeacher returns a teacher's notes, newest first.
func (s *ObservationService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Observation, error) {
	observations, err := s.store.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list observations")
	}
	return observations, nil
}

// Create attaches a note to a teacher. Free text is optional for regular
// predefined entries and mandatory for the "Otro" sentinel or when no
// predefined entry is referenced.
func (s *ObservationService) Create(ctx context.Context, teacherID string, req dto.CreateObservationRequest) (*models.Observation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid observation payload")
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	if _, ok := engine.NewCatalog(snap).Teacher(teacherID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	text := strings.TrimSpace(req.Text)
	if req.PredefinedID == nil {
		if text == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "free-form observation requires text")
		}
	} else {
		predefined, err := s.store.FindPredefinedByID(ctx, *req.PredefinedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "predefined observation not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load predefined observation")
		}
		if predefined.Label == models.OtherObservationLabel && text == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, `predefined entry "Otro" requires accompanying text`)
		}
	}

	o := &models.Observation{
		TeacherID:    teacherID,
		PredefinedID: req.PredefinedID,
		Text:         text,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create observation")
	}
	return o, nil
}

// Delete removes a note.
func (s *ObservationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete observation")
	}
	return nil
}
