package engine

import (
	"fmt"

	"github.com/bocho8/chronos/internal/models"
)

// Candidate is a proposed placement to be checked before it exists.
type Candidate struct {
	GroupID   string
	SubjectID string
	TeacherID string
	Day       models.Weekday
	BlockID   string
}

// Detector runs the conflict checks for a candidate against a grid and
// availability index. Detection is read-only and deterministic: the same
// state and candidate always yield the same ordered findings.
type Detector struct {
	catalog *Catalog
	grid    *Grid
	avail   *AvailabilityIndex
}

// NewDetector wires a detector over request-scoped state.
func NewDetector(catalog *Catalog, grid *Grid, avail *AvailabilityIndex) *Detector {
	return &Detector{catalog: catalog, grid: grid, avail: avail}
}

// Grid exposes the underlying grid for callers composing suggestions.
func (d *Detector) Grid() *Grid {
	return d.grid
}

// Detect returns the ordered findings for a candidate. excludeID lets an
// edit ignore its own prior slot. Check order is fixed: teacher double
// booking, group double booking, teacher unavailable, then guideline
// findings from the compliance calculator with the candidate included.
func (d *Detector) Detect(cand Candidate, excludeID string) []models.Conflict {
	var conflicts []models.Conflict

	if existing, ok := d.grid.TeacherAt(cand.TeacherID, cand.Day, cand.BlockID); ok && existing.ID != excludeID {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictTeacherDoubleBooked,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("teacher already has a class at %s/%s (group %s)", cand.Day, d.blockLabel(cand.BlockID), existing.GroupID),
		})
	}

	if existing, ok := d.grid.GroupAt(cand.GroupID, cand.Day, cand.BlockID); ok && existing.ID != excludeID {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictGroupDoubleBooked,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("group already has a class at %s/%s (subject %s)", cand.Day, d.blockLabel(cand.BlockID), existing.SubjectID),
		})
	}

	if !d.avail.IsAvailable(cand.TeacherID, cand.Day, cand.BlockID) {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictTeacherUnavailable,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("teacher is marked unavailable at %s/%s", cand.Day, d.blockLabel(cand.BlockID)),
		})
	}

	_, guideline := d.Compliance(cand.GroupID, cand.SubjectID, &cand, excludeID)
	conflicts = append(conflicts, guideline...)

	return conflicts
}

func (d *Detector) blockLabel(blockID string) string {
	if b, ok := d.catalog.Block(blockID); ok && b.Label != "" {
		return b.Label
	}
	return blockID
}
