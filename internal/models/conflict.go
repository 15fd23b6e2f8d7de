package models

// ConflictType identifies a finding produced by the conflict detector.
type ConflictType string

const (
	ConflictTeacherDoubleBooked ConflictType = "TEACHER_DOUBLE_BOOKED"
	ConflictGroupDoubleBooked   ConflictType = "GROUP_DOUBLE_BOOKED"
	ConflictTeacherUnavailable  ConflictType = "TEACHER_UNAVAILABLE"
	ConflictMaxDaysExceeded     ConflictType = "GUIDELINE_MAX_DAYS_EXCEEDED"
	ConflictMinDaysNotMet       ConflictType = "GUIDELINE_MIN_DAYS_NOT_MET"
	ConflictHoursBelowTarget    ConflictType = "GUIDELINE_HOURS_BELOW_TARGET"
	ConflictCompliant           ConflictType = "GUIDELINE_COMPLIANT"
)

// Severity grades a conflict finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Suggestion is a corrective alternative the caller can apply directly.
type Suggestion struct {
	Message   string  `json:"message"`
	Day       Weekday `json:"day,omitempty"`
	BlockID   string  `json:"block_id,omitempty"`
	TeacherID string  `json:"teacher_id,omitempty"`
}

// Conflict is one finding for a candidate placement, ordered and stable so
// callers and tests can rely on deterministic output.
type Conflict struct {
	Type        ConflictType `json:"type"`
	Severity    Severity     `json:"severity"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Blocking reports whether the finding prevents acceptance. Errors always
// block; strict mode promotes warnings.
func (c Conflict) Blocking(strict bool) bool {
	if c.Severity == SeverityError {
		return true
	}
	return strict && c.Severity == SeverityWarning
}

// AnyBlocking reports whether any finding in the list blocks acceptance.
func AnyBlocking(conflicts []Conflict, strict bool) bool {
	for _, c := range conflicts {
		if c.Blocking(strict) {
			return true
		}
	}
	return false
}

// ComplianceReport aggregates a subject's placements within one group
// against its guideline.
type ComplianceReport struct {
	GroupID       string    `json:"group_id"`
	SubjectID     string    `json:"subject_id"`
	DaysUsed      []Weekday `json:"days_used"`
	HoursAssigned int       `json:"hours_assigned"`
	GuidelineID   *string   `json:"guideline_id,omitempty"`
}
