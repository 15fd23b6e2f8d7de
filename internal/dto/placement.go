package dto

import "github.com/bocho8/chronos/internal/models"

// PlacementRequest is the inbound candidate-assignment payload.
type PlacementRequest struct {
	GroupID             string `json:"group_id" validate:"required"`
	SubjectID           string `json:"subject_id" validate:"required"`
	TeacherID           string `json:"teacher_id" validate:"required"`
	Day                 string `json:"day" validate:"required"`
	BlockID             string `json:"block_id" validate:"required"`
	ExcludeAssignmentID string `json:"exclude_assignment_id,omitempty"`
	Strict              *bool  `json:"strict,omitempty"`
}

// PlacementResult reports the outcome of validating or committing a
// candidate. Conflicts are data, never errors.
type PlacementResult struct {
	Accepted   bool                     `json:"accepted"`
	Assignment *models.Assignment       `json:"assignment,omitempty"`
	Conflicts  []models.Conflict        `json:"conflicts"`
	Compliance *models.ComplianceReport `json:"compliance,omitempty"`
}

// Bulk operations over explicitly selected assignments.
const (
	BulkOpDelete = "delete"
	BulkOpCopy   = "copy"
	BulkOpMove   = "move"
)

// BulkTarget is the destination for copy/move items. Either a (day, block)
// slot or a group must be given: with only a group set, items land in that
// group at their source slot.
type BulkTarget struct {
	Day     string `json:"day,omitempty"`
	BlockID string `json:"block_id,omitempty"`
	GroupID string `json:"group_id,omitempty"`
}

// BulkRequest selects an operation over a list of assignment ids. Atomic
// mode commits nothing when any item fails a hard check; best-effort mode
// commits the clean subset and reports the rest. The mode is fixed for the
// whole batch.
type BulkRequest struct {
	Operation     string      `json:"operation" validate:"required,oneof=delete copy move"`
	AssignmentIDs []string    `json:"assignment_ids" validate:"required,min=1,dive,required"`
	Target        *BulkTarget `json:"target,omitempty"`
	Atomic        bool        `json:"atomic"`
	Strict        *bool       `json:"strict,omitempty"`
}

// BulkRejection pairs a rejected assignment id with its findings. Reason is
// set for rejections with no detector finding, such as an unknown id.
type BulkRejection struct {
	ID        string            `json:"id"`
	Conflicts []models.Conflict `json:"conflicts,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}

// BulkResult summarises a batch execution.
type BulkResult struct {
	Committed []string        `json:"committed"`
	Rejected  []BulkRejection `json:"rejected"`
}

// AvailabilityToggleRequest flips one availability slot for a teacher.
type AvailabilityToggleRequest struct {
	Day       string `json:"day" validate:"required"`
	BlockID   string `json:"block_id" validate:"required"`
	Available *bool  `json:"available" validate:"required"`
}

// AvailabilityToggleResult reports the previous effective value so callers
// can render an undo affordance.
type AvailabilityToggleResult struct {
	TeacherID string         `json:"teacher_id"`
	Day       models.Weekday `json:"day"`
	BlockID   string         `json:"block_id"`
	Available bool           `json:"available"`
	Previous  bool           `json:"previous"`
}

// AvailabilityCell is one day/block entry in a teacher's availability view.
type AvailabilityCell struct {
	BlockID   string `json:"block_id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// AvailabilityDay groups cells for one weekday.
type AvailabilityDay struct {
	Day    models.Weekday     `json:"day"`
	Blocks []AvailabilityCell `json:"blocks"`
}

// AvailabilityMatrix is the full day-by-block availability of one teacher.
type AvailabilityMatrix struct {
	TeacherID string            `json:"teacher_id"`
	Days      []AvailabilityDay `json:"days"`
}

// ComplianceResponse pairs the aggregate report with its findings.
type ComplianceResponse struct {
	Report   models.ComplianceReport `json:"report"`
	Findings []models.Conflict       `json:"findings"`
}

// CreateObservationRequest attaches a note to a teacher. When the
// predefined entry is the "Otro" sentinel, free text is mandatory.
type CreateObservationRequest struct {
	PredefinedID *string `json:"predefined_id,omitempty"`
	Text         string  `json:"text"`
}

// SubjectTeachersResponse lists teachers already assigned to a subject,
// feeding the auto-selection convenience in the schedule view.
type SubjectTeachersResponse struct {
	SubjectID string           `json:"subject_id"`
	Teachers  []models.Teacher `json:"teachers"`
}
