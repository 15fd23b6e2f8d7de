package engine

import (
	"fmt"

	"github.com/bocho8/chronos/internal/models"
)

// DefaultSuggestionLimit bounds how many alternatives a single conflict
// produces when the caller does not say otherwise.
const DefaultSuggestionLimit = 5

// Suggester proposes corrective alternatives for conflict findings, reusing
// the same grid and availability indices the detector ran against.
type Suggester struct {
	catalog *Catalog
	grid    *Grid
	avail   *AvailabilityIndex
}

// NewSuggester wires a suggester over request-scoped state.
func NewSuggester(catalog *Catalog, grid *Grid, avail *AvailabilityIndex) *Suggester {
	return &Suggester{catalog: catalog, grid: grid, avail: avail}
}

// Attach fills in suggestions for each finding and returns the list.
func (s *Suggester) Attach(cand Candidate, conflicts []models.Conflict, limit int) []models.Conflict {
	for i := range conflicts {
		conflicts[i].Suggestions = s.ForConflict(cand, conflicts[i], limit)
	}
	return conflicts
}

// ForConflict proposes up to limit alternatives for one finding. Slots are
// ranked by soonest day then earliest block.
func (s *Suggester) ForConflict(cand Candidate, conflict models.Conflict, limit int) []models.Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	switch conflict.Type {
	case models.ConflictTeacherDoubleBooked:
		suggestions := s.freeSlots(cand, limit, false)
		if len(suggestions) < limit {
			suggestions = append(suggestions, s.alternateTeachers(cand, limit-len(suggestions))...)
		}
		return suggestions
	case models.ConflictGroupDoubleBooked:
		return s.freeSlots(cand, limit, false)
	case models.ConflictTeacherUnavailable:
		return s.freeSlots(cand, limit, true)
	case models.ConflictMaxDaysExceeded:
		return s.consolidationSlots(cand, limit)
	default:
		return nil
	}
}

// freeSlots scans all (day, block) combinations where neither the teacher
// nor the group collides, skipping the candidate's own slot. When
// requireAvailable is set, slots the teacher marked unavailable are skipped
// too.
func (s *Suggester) freeSlots(cand Candidate, limit int, requireAvailable bool) []models.Suggestion {
	var out []models.Suggestion
	for _, day := range models.Weekdays() {
		for _, block := range s.catalog.Blocks() {
			if day == cand.Day && block.ID == cand.BlockID {
				continue
			}
			if !s.slotFree(cand, day, block.ID, requireAvailable) {
				continue
			}
			out = append(out, models.Suggestion{
				Message: fmt.Sprintf("move to %s, %s", day, block.Label),
				Day:     day,
				BlockID: block.ID,
			})
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// consolidationSlots proposes free blocks on days the subject already uses,
// so hours concentrate instead of spreading to a new day.
func (s *Suggester) consolidationSlots(cand Candidate, limit int) []models.Suggestion {
	used := make(map[models.Weekday]struct{})
	for _, a := range s.grid.FindByGroupSubject(cand.GroupID, cand.SubjectID) {
		used[a.Day] = struct{}{}
	}

	var out []models.Suggestion
	for _, day := range models.Weekdays() {
		if _, ok := used[day]; !ok {
			continue
		}
		for _, block := range s.catalog.Blocks() {
			if !s.slotFree(cand, day, block.ID, true) {
				continue
			}
			out = append(out, models.Suggestion{
				Message: fmt.Sprintf("consolidate on %s, %s (day already in use)", day, block.Label),
				Day:     day,
				BlockID: block.ID,
			})
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// alternateTeachers proposes teachers already teaching the subject elsewhere
// who are free and available at the candidate slot.
func (s *Suggester) alternateTeachers(cand Candidate, limit int) []models.Suggestion {
	var out []models.Suggestion
	for _, teacherID := range s.grid.TeachersForSubject(cand.SubjectID) {
		if teacherID == cand.TeacherID {
			continue
		}
		if _, busy := s.grid.TeacherAt(teacherID, cand.Day, cand.BlockID); busy {
			continue
		}
		if !s.avail.IsAvailable(teacherID, cand.Day, cand.BlockID) {
			continue
		}
		name := teacherID
		if t, ok := s.catalog.Teacher(teacherID); ok {
			name = t.FullName
		}
		out = append(out, models.Suggestion{
			Message:   fmt.Sprintf("assign %s, who also teaches this subject", name),
			TeacherID: teacherID,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Suggester) slotFree(cand Candidate, day models.Weekday, blockID string, requireAvailable bool) bool {
	if _, busy := s.grid.TeacherAt(cand.TeacherID, day, blockID); busy {
		return false
	}
	if _, busy := s.grid.GroupAt(cand.GroupID, day, blockID); busy {
		return false
	}
	if requireAvailable && !s.avail.IsAvailable(cand.TeacherID, day, blockID) {
		return false
	}
	return true
}
