package models

import "time"

// Assignment places a (group, subject, teacher) triple into a (day, block)
// slot. At most one assignment may exist per (day, block, teacher) and per
// (day, block, group); the engine enforces this, not storage.
type Assignment struct {
	ID        string    `db:"id" json:"id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Day       Weekday   `db:"day_of_week" json:"day_of_week"`
	BlockID   string    `db:"block_id" json:"block_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AssignmentFilter describes query params for listing assignments.
type AssignmentFilter struct {
	GroupID   string
	SubjectID string
	TeacherID string
	Day       string
	BlockID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// AvailabilitySlot is an explicit availability override for a teacher at a
// specific day/block. Absent records default to available.
type AvailabilitySlot struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Day       Weekday   `db:"day_of_week" json:"day_of_week"`
	BlockID   string    `db:"block_id" json:"block_id"`
	Available bool      `db:"available" json:"available"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
