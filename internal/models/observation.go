package models

import "time"

// OtherObservationLabel is the sentinel predefined entry that requires
// accompanying free text.
const OtherObservationLabel = "Otro"

// PredefinedObservation is a catalog entry for common teacher notes.
type PredefinedObservation struct {
	ID        string    `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Observation is an advisory note attached to a teacher. It never
// participates in conflict arithmetic; it is surfaced as context only.
type Observation struct {
	ID           string    `db:"id" json:"id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	PredefinedID *string   `db:"predefined_id" json:"predefined_id,omitempty"`
	Text         string    `db:"text" json:"text"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
