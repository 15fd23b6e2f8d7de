package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/engine"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

// BulkService coordinates delete/copy/move over an explicit selection of
// assignments. The whole batch runs inside one transaction against a
// provisional grid, so items accepted earlier in the batch are visible to
// the checks on later items and intra-batch collisions are caught.
type bulkRecorder interface {
	RecordBulkItem(operation, result string)
}

type BulkService struct {
	store        placementStore
	availability availabilitySource
	catalog      catalogSource
	placements   *PlacementService
	metrics      bulkRecorder
	validator    *validator.Validate
	logger       *zap.Logger

	strict bool
}

// NewBulkService instantiates BulkService.
func NewBulkService(store placementStore, availability availabilitySource, catalog catalogSource, placements *PlacementService, metrics bulkRecorder, validate *validator.Validate, logger *zap.Logger, strict bool) *BulkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkService{
		store:        store,
		availability: availability,
		catalog:      catalog,
		placements:   placements,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		strict:       strict,
	}
}

// bulkTarget is the resolved destination for copy/move items.
type bulkTarget struct {
	day     models.Weekday
	blockID string
	groupID string
}

// Execute runs a batch. In atomic mode nothing commits when any copy/move
// item fails a blocking check; in best-effort mode the clean subset commits
// and the rest is reported per item. Deletes are idempotent either way: an
// unknown id is reported, never fatal.
func (s *BulkService) Execute(ctx context.Context, req dto.BulkRequest) (*dto.BulkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}
	strict := s.strict
	if req.Strict != nil {
		strict = *req.Strict
	}

	tx, err := s.store.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer func() { _ = tx.Rollback() }()

	// All reads happen inside the batch transaction, so the state the
	// checks run against is the state the writes land on.
	state, err := s.placements.loadState(ctx, tx)
	if err != nil {
		return nil, err
	}

	var target *bulkTarget
	if req.Operation == dto.BulkOpCopy || req.Operation == dto.BulkOpMove {
		target, err = s.resolveTarget(state, req.Target)
		if err != nil {
			return nil, err
		}
	}

	result := &dto.BulkResult{Committed: []string{}, Rejected: []dto.BulkRejection{}}
	aborted := false
	for _, id := range req.AssignmentIDs {
		var rejection *dto.BulkRejection
		switch req.Operation {
		case dto.BulkOpDelete:
			rejection, err = s.deleteOne(ctx, tx, state, id)
		case dto.BulkOpCopy:
			rejection, err = s.copyOne(ctx, tx, state, id, target, strict)
		case dto.BulkOpMove:
			rejection, err = s.moveOne(ctx, tx, state, id, target, strict)
		}
		if err != nil {
			return nil, err
		}
		if rejection == nil {
			result.Committed = append(result.Committed, id)
			s.recordItem(req.Operation, "committed")
			continue
		}
		result.Rejected = append(result.Rejected, *rejection)
		s.recordItem(req.Operation, "rejected")
		// Missing ids carry a reason but no conflicts; they never abort an
		// atomic batch, only blocking findings do.
		if req.Atomic && len(rejection.Conflicts) > 0 {
			aborted = true
		}
	}

	if aborted {
		// Nothing commits, and the clean items land in rejected too so the
		// caller sees the full per-item picture of the aborted batch.
		s.logger.Info("atomic bulk aborted",
			zap.String("operation", req.Operation),
			zap.Int("blocked_items", len(result.Rejected)))
		for _, id := range result.Committed {
			result.Rejected = append(result.Rejected, dto.BulkRejection{ID: id, Reason: "batch aborted, no blocking conflicts on this item"})
		}
		result.Committed = []string{}
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit bulk operation")
	}
	return result, nil
}

func (s *BulkService) recordItem(operation, result string) {
	if s.metrics != nil {
		s.metrics.RecordBulkItem(operation, result)
	}
}

// resolveTarget validates the destination against the catalog. A slot, a
// group, or both must be present.
func (s *BulkService) resolveTarget(state *engineState, raw *dto.BulkTarget) (*bulkTarget, error) {
	if raw == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "copy and move require a target")
	}
	t := &bulkTarget{groupID: raw.GroupID}
	if raw.Day != "" || raw.BlockID != "" {
		day, err := models.ParseWeekday(raw.Day)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid target day")
		}
		if _, ok := state.catalog.Block(raw.BlockID); !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "target time block not found")
		}
		t.day = day
		t.blockID = raw.BlockID
	}
	if t.groupID != "" {
		if _, ok := state.catalog.Group(t.groupID); !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "target group not found")
		}
	}
	if t.day == "" && t.groupID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "target needs a day/block slot or a group")
	}
	return t, nil
}

func (t *bulkTarget) candidateFor(src models.Assignment) engine.Candidate {
	cand := engine.Candidate{
		GroupID:   src.GroupID,
		SubjectID: src.SubjectID,
		TeacherID: src.TeacherID,
		Day:       src.Day,
		BlockID:   src.BlockID,
	}
	if t.day != "" {
		cand.Day = t.day
		cand.BlockID = t.blockID
	}
	if t.groupID != "" {
		cand.GroupID = t.groupID
	}
	return cand
}

func (s *BulkService) deleteOne(ctx context.Context, tx sqlx.ExtContext, state *engineState, id string) (*dto.BulkRejection, error) {
	if !state.grid.Remove(id) {
		return &dto.BulkRejection{ID: id, Reason: "assignment not found"}, nil
	}
	if err := s.store.Delete(ctx, tx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil, nil
}

func (s *BulkService) copyOne(ctx context.Context, tx sqlx.ExtContext, state *engineState, id string, target *bulkTarget, strict bool) (*dto.BulkRejection, error) {
	src, ok := state.grid.ByID(id)
	if !ok {
		return &dto.BulkRejection{ID: id, Reason: "assignment not found"}, nil
	}
	cand := target.candidateFor(src)
	conflicts := state.detector.Detect(cand, "")
	if models.AnyBlocking(conflicts, strict) {
		return &dto.BulkRejection{ID: id, Conflicts: conflicts}, nil
	}

	dup := models.Assignment{
		ID:        uuid.NewString(),
		GroupID:   cand.GroupID,
		SubjectID: cand.SubjectID,
		TeacherID: cand.TeacherID,
		Day:       cand.Day,
		BlockID:   cand.BlockID,
	}
	if err := state.grid.Place(dup); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "provisional grid rejected accepted copy")
	}
	if err := s.store.Create(ctx, tx, &dup); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment copy")
	}
	return nil, nil
}

func (s *BulkService) moveOne(ctx context.Context, tx sqlx.ExtContext, state *engineState, id string, target *bulkTarget, strict bool) (*dto.BulkRejection, error) {
	src, ok := state.grid.ByID(id)
	if !ok {
		return &dto.BulkRejection{ID: id, Reason: "assignment not found"}, nil
	}
	cand := target.candidateFor(src)
	// The source's own slot is excluded so a move within the same cell, or
	// swaps inside the batch, never self-conflict.
	conflicts := state.detector.Detect(cand, id)
	if models.AnyBlocking(conflicts, strict) {
		return &dto.BulkRejection{ID: id, Conflicts: conflicts}, nil
	}

	moved := src
	moved.GroupID = cand.GroupID
	moved.Day = cand.Day
	moved.BlockID = cand.BlockID

	state.grid.Remove(id)
	if err := state.grid.Place(moved); err != nil {
		// Restore the source so later items in the batch still see it.
		_ = state.grid.Place(src)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("provisional grid rejected accepted move of %s", id))
	}
	if err := s.store.Update(ctx, tx, &moved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to move assignment")
	}
	return nil, nil
}
