package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/engine"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

type placementStore interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Assignment, error)
	ListAll(ctx context.Context, exec sqlx.ExtContext) ([]models.Assignment, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	TeacherIDsBySubject(ctx context.Context, subjectID string) ([]string, error)
	Create(ctx context.Context, exec sqlx.ExtContext, a *models.Assignment) error
	Update(ctx context.Context, exec sqlx.ExtContext, a *models.Assignment) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type availabilitySource interface {
	ListAll(ctx context.Context, exec sqlx.ExtContext) ([]models.AvailabilitySlot, error)
}

type catalogSource interface {
	Snapshot(ctx context.Context) (models.Catalog, error)
}

type evaluationRecorder interface {
	RecordEvaluation(outcome string)
}

// Evaluation outcomes reported to metrics.
const (
	outcomeAccepted    = "accepted"
	outcomeRejected    = "rejected"
	outcomeConcurrency = "concurrency"
)

// engineState bundles the request-scoped indices the detector runs against.
type engineState struct {
	catalog  *engine.Catalog
	grid     *engine.Grid
	detector *engine.Detector
	suggest  *engine.Suggester
}

// PlacementService validates and commits timetable placements. Writes follow
// a validate-then-commit protocol: the candidate is checked against fresh
// state, then re-checked inside the write transaction so a concurrent commit
// between the two reads cannot slip a hard conflict into storage.
type PlacementService struct {
	store        placementStore
	availability availabilitySource
	catalog      catalogSource
	metrics      evaluationRecorder
	validator    *validator.Validate
	logger       *zap.Logger

	strict          bool
	suggestionLimit int
}

// NewPlacementService instantiates PlacementService. strict and
// suggestionLimit come from engine configuration; per-request overrides win.
func NewPlacementService(store placementStore, availability availabilitySource, catalog catalogSource, metrics evaluationRecorder, validate *validator.Validate, logger *zap.Logger, strict bool, suggestionLimit int) *PlacementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if suggestionLimit <= 0 {
		suggestionLimit = engine.DefaultSuggestionLimit
	}
	return &PlacementService{
		store:           store,
		availability:    availability,
		catalog:         catalog,
		metrics:         metrics,
		validator:       validate,
		logger:          logger,
		strict:          strict,
		suggestionLimit: suggestionLimit,
	}
}

// loadState rebuilds the engine indices from storage. Pass a transaction to
// read inside a commit window.
func (s *PlacementService) loadState(ctx context.Context, exec sqlx.ExtContext) (*engineState, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	assignments, err := s.store.ListAll(ctx, exec)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	slots, err := s.availability.ListAll(ctx, exec)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}

	catalog := engine.NewCatalog(snap)
	grid, err := engine.NewGrid(assignments)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored assignments violate occupancy invariant")
	}
	avail := engine.NewAvailabilityIndex(slots)

	return &engineState{
		catalog:  catalog,
		grid:     grid,
		detector: engine.NewDetector(catalog, grid, avail),
		suggest:  engine.NewSuggester(catalog, grid, avail),
	}, nil
}

func (s *PlacementService) strictFor(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.strict
}

// candidateFrom validates a request payload and resolves it into an engine
// candidate against the catalog.
func (s *PlacementService) candidateFrom(state *engineState, req dto.PlacementRequest) (engine.Candidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return engine.Candidate{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
	}
	day, err := models.ParseWeekday(req.Day)
	if err != nil {
		return engine.Candidate{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day of week")
	}
	if _, ok := state.catalog.Group(req.GroupID); !ok {
		return engine.Candidate{}, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	if _, ok := state.catalog.Subject(req.SubjectID); !ok {
		return engine.Candidate{}, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	if _, ok := state.catalog.Teacher(req.TeacherID); !ok {
		return engine.Candidate{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if _, ok := state.catalog.Block(req.BlockID); !ok {
		return engine.Candidate{}, appErrors.Clone(appErrors.ErrNotFound, "time block not found")
	}
	return engine.Candidate{
		GroupID:   req.GroupID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Day:       day,
		BlockID:   req.BlockID,
	}, nil
}

// evaluate runs detection over a candidate and assembles the result payload.
func (s *PlacementService) evaluate(state *engineState, cand engine.Candidate, excludeID string, strict bool) *dto.PlacementResult {
	conflicts := state.detector.Detect(cand, excludeID)
	conflicts = state.suggest.Attach(cand, conflicts, s.suggestionLimit)
	report, _ := state.detector.Compliance(cand.GroupID, cand.SubjectID, &cand, excludeID)
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	return &dto.PlacementResult{
		Accepted:   !models.AnyBlocking(conflicts, strict),
		Conflicts:  conflicts,
		Compliance: &report,
	}
}

func (s *PlacementService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordEvaluation(outcome)
	}
}

// List returns assignments with pagination metadata.
func (s *PlacementService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, *models.Pagination, error) {
	assignments, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return assignments, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListByGroup returns a group's assignments in day/block order.
func (s *PlacementService) ListByGroup(ctx context.Context, groupID string) ([]models.Assignment, error) {
	assignments, err := s.store.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list group assignments")
	}
	return assignments, nil
}

// ListByTeacher returns assignments taught by a teacher.
func (s *PlacementService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Assignment, error) {
	assignments, err := s.store.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher assignments")
	}
	return assignments, nil
}

// Validate checks a candidate without writing anything. Conflicts come back
// as data; the call only errors on malformed input or storage failures.
func (s *PlacementService) Validate(ctx context.Context, req dto.PlacementRequest) (*dto.PlacementResult, error) {
	state, err := s.loadState(ctx, nil)
	if err != nil {
		return nil, err
	}
	cand, err := s.candidateFrom(state, req)
	if err != nil {
		return nil, err
	}
	result := s.evaluate(state, cand, req.ExcludeAssignmentID, s.strictFor(req.Strict))
	if result.Accepted {
		s.record(outcomeAccepted)
	} else {
		s.record(outcomeRejected)
	}
	return result, nil
}

// Create commits a candidate placement. The candidate is validated against
// fresh state, then re-validated inside the write transaction; if another
// writer changed the picture in between, the commit aborts with a
// concurrency error and the caller must re-validate and retry.
func (s *PlacementService) Create(ctx context.Context, req dto.PlacementRequest) (*dto.PlacementResult, error) {
	return s.commit(ctx, req, "")
}

// Update re-places an existing assignment. The assignment's own slot is
// excluded from detection so moving within the same cell never self-conflicts.
func (s *PlacementService) Update(ctx context.Context, id string, req dto.PlacementRequest) (*dto.PlacementResult, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return s.commit(ctx, req, id)
}

func (s *PlacementService) commit(ctx context.Context, req dto.PlacementRequest, excludeID string) (*dto.PlacementResult, error) {
	strict := s.strictFor(req.Strict)

	state, err := s.loadState(ctx, nil)
	if err != nil {
		return nil, err
	}
	cand, err := s.candidateFrom(state, req)
	if err != nil {
		return nil, err
	}

	result := s.evaluate(state, cand, excludeID, strict)
	if !result.Accepted {
		s.record(outcomeRejected)
		return result, nil
	}

	tx, err := s.store.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer func() { _ = tx.Rollback() }()

	// Re-read and re-check inside the commit window. Catalog data is
	// read-mostly and reused from the first pass.
	fresh, err := s.loadState(ctx, tx)
	if err != nil {
		return nil, err
	}
	recheck := fresh.evaluateRecheck(cand, excludeID, strict)
	if !recheck {
		s.record(outcomeConcurrency)
		s.logger.Warn("placement aborted, state changed during commit",
			zap.String("group_id", cand.GroupID),
			zap.String("teacher_id", cand.TeacherID),
			zap.String("day", string(cand.Day)),
			zap.String("block_id", cand.BlockID))
		return nil, appErrors.ErrConcurrency
	}

	assignment := &models.Assignment{
		ID:        excludeID,
		GroupID:   cand.GroupID,
		SubjectID: cand.SubjectID,
		TeacherID: cand.TeacherID,
		Day:       cand.Day,
		BlockID:   cand.BlockID,
	}
	if excludeID == "" {
		err = s.store.Create(ctx, tx, assignment)
	} else {
		err = s.store.Update(ctx, tx, assignment)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist assignment")
	}
	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit placement")
	}

	s.record(outcomeAccepted)
	result.Assignment = assignment
	return result, nil
}

// evaluateRecheck reports whether the candidate still passes the blocking
// checks against transaction-fresh state.
func (st *engineState) evaluateRecheck(cand engine.Candidate, excludeID string, strict bool) bool {
	return !models.AnyBlocking(st.detector.Detect(cand, excludeID), strict)
}

// Delete removes an assignment. Removal cannot introduce conflicts, so no
// re-check window is needed.
func (s *PlacementService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.store.Delete(ctx, nil, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

// Compliance reports a (group, subject) aggregate against its guideline
// without any candidate in play.
func (s *PlacementService) Compliance(ctx context.Context, groupID, subjectID string) (*dto.ComplianceResponse, error) {
	state, err := s.loadState(ctx, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := state.catalog.Group(groupID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	if _, ok := state.catalog.Subject(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	report, findings := state.detector.Compliance(groupID, subjectID, nil, "")
	if findings == nil {
		findings = []models.Conflict{}
	}
	return &dto.ComplianceResponse{Report: report, Findings: findings}, nil
}

// SuggestTeachers lists teachers already assigned to a subject anywhere in
// the timetable, feeding the auto-selection shortcut in schedule editing.
func (s *PlacementService) SuggestTeachers(ctx context.Context, subjectID string) (*dto.SubjectTeachersResponse, error) {
	state, err := s.loadState(ctx, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := state.catalog.Subject(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	ids, err := s.store.TeacherIDsBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject teachers")
	}
	teachers := make([]models.Teacher, 0, len(ids))
	for _, id := range ids {
		if t, ok := state.catalog.Teacher(id); ok {
			teachers = append(teachers, t)
		}
	}
	return &dto.SubjectTeachersResponse{SubjectID: subjectID, Teachers: teachers}, nil
}
