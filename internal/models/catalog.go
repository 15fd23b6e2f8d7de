package models

import "time"

// TimeBlock is a fixed interval of the school day, shared by all weekdays.
// Blocks are ordered by start time.
type TimeBlock struct {
	ID        string    `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Group represents one class of students.
type Group struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Level     string    `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Teacher represents an instructor record.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Subject is an academic subject with a weekly hours target and an optional
// guideline binding. A subject may be taught jointly with a shared group.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	WeeklyHours  int       `db:"weekly_hours" json:"weekly_hours"`
	GuidelineID  *string   `db:"guideline_id" json:"guideline_id,omitempty"`
	JointGroupID *string   `db:"joint_group_id" json:"joint_group_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Guideline bounds how many distinct weekdays a subject may be taught on,
// per inspection standards (Pauta ANEP).
type Guideline struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	MinDays           int       `db:"min_days" json:"min_days"`
	MaxDays           int       `db:"max_days" json:"max_days"`
	SpecialConditions *string   `db:"special_conditions" json:"special_conditions,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Catalog is the read-only reference snapshot the engine is built against.
type Catalog struct {
	Groups     []Group     `json:"groups"`
	Subjects   []Subject   `json:"subjects"`
	Teachers   []Teacher   `json:"teachers"`
	TimeBlocks []TimeBlock `json:"time_blocks"`
	Guidelines []Guideline `json:"guidelines"`
}

// Pagination carries page metadata for list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
