package engine

import (
	"fmt"
	"sort"

	"github.com/bocho8/chronos/internal/models"
)

type slotKey struct {
	Day     models.Weekday
	BlockID string
}

type teacherSlotKey struct {
	TeacherID string
	Day       models.Weekday
	BlockID   string
}

type groupSlotKey struct {
	GroupID string
	Day     models.Weekday
	BlockID string
}

// Grid holds the current assignments with collision indices by
// (teacher, day, block) and (group, day, block). It is rebuilt from the
// persisted assignment set for every request; nothing survives across
// requests.
type Grid struct {
	byID      map[string]models.Assignment
	byTeacher map[teacherSlotKey]string
	byGroup   map[groupSlotKey]string
	byCell    map[slotKey][]string
}

// NewGrid builds the indices from a flat assignment list. Duplicate
// occupancy in the stored data is reported as an error; the non-overlap
// invariant is supposed to hold for everything already committed.
func NewGrid(assignments []models.Assignment) (*Grid, error) {
	g := &Grid{
		byID:      make(map[string]models.Assignment, len(assignments)),
		byTeacher: make(map[teacherSlotKey]string, len(assignments)),
		byGroup:   make(map[groupSlotKey]string, len(assignments)),
		byCell:    make(map[slotKey][]string),
	}
	for _, a := range assignments {
		if err := g.Place(a); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Place inserts an assignment, updating all indices. It never overwrites:
// the caller must have resolved conflicts beforehand.
func (g *Grid) Place(a models.Assignment) error {
	if _, exists := g.byID[a.ID]; exists {
		return fmt.Errorf("assignment %s already placed", a.ID)
	}
	tk := teacherSlotKey{TeacherID: a.TeacherID, Day: a.Day, BlockID: a.BlockID}
	if other, ok := g.byTeacher[tk]; ok {
		return fmt.Errorf("teacher %s already occupies %s/%s (assignment %s)", a.TeacherID, a.Day, a.BlockID, other)
	}
	gk := groupSlotKey{GroupID: a.GroupID, Day: a.Day, BlockID: a.BlockID}
	if other, ok := g.byGroup[gk]; ok {
		return fmt.Errorf("group %s already occupies %s/%s (assignment %s)", a.GroupID, a.Day, a.BlockID, other)
	}

	g.byID[a.ID] = a
	g.byTeacher[tk] = a.ID
	g.byGroup[gk] = a.ID
	ck := slotKey{Day: a.Day, BlockID: a.BlockID}
	g.byCell[ck] = append(g.byCell[ck], a.ID)
	return nil
}

// Remove deletes an assignment from all indices. Removing an unknown id is
// a no-op and reports false.
func (g *Grid) Remove(id string) bool {
	a, ok := g.byID[id]
	if !ok {
		return false
	}
	delete(g.byID, id)
	delete(g.byTeacher, teacherSlotKey{TeacherID: a.TeacherID, Day: a.Day, BlockID: a.BlockID})
	delete(g.byGroup, groupSlotKey{GroupID: a.GroupID, Day: a.Day, BlockID: a.BlockID})

	ck := slotKey{Day: a.Day, BlockID: a.BlockID}
	ids := g.byCell[ck]
	for i, existing := range ids {
		if existing == id {
			g.byCell[ck] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(g.byCell[ck]) == 0 {
		delete(g.byCell, ck)
	}
	return true
}

// ByID resolves an assignment.
func (g *Grid) ByID(id string) (models.Assignment, bool) {
	a, ok := g.byID[id]
	return a, ok
}

// TeacherAt returns the assignment occupying (teacher, day, block), if any.
func (g *Grid) TeacherAt(teacherID string, day models.Weekday, blockID string) (models.Assignment, bool) {
	id, ok := g.byTeacher[teacherSlotKey{TeacherID: teacherID, Day: day, BlockID: blockID}]
	if !ok {
		return models.Assignment{}, false
	}
	return g.byID[id], true
}

// GroupAt returns the assignment occupying (group, day, block), if any.
func (g *Grid) GroupAt(groupID string, day models.Weekday, blockID string) (models.Assignment, bool) {
	id, ok := g.byGroup[groupSlotKey{GroupID: groupID, Day: day, BlockID: blockID}]
	if !ok {
		return models.Assignment{}, false
	}
	return g.byID[id], true
}

// Cell lists all assignments at (day, block) across groups, ordered by
// group then teacher for determinism.
func (g *Grid) Cell(day models.Weekday, blockID string) []models.Assignment {
	ids := g.byCell[slotKey{Day: day, BlockID: blockID}]
	out := make([]models.Assignment, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.byID[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].TeacherID < out[j].TeacherID
	})
	return out
}

// FindByGroupSubject returns the assignments for a (group, subject) pair
// ordered by day then block, feeding the compliance calculator.
func (g *Grid) FindByGroupSubject(groupID, subjectID string) []models.Assignment {
	var out []models.Assignment
	for _, a := range g.byID {
		if a.GroupID == groupID && a.SubjectID == subjectID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day.Index() < out[j].Day.Index()
		}
		return out[i].BlockID < out[j].BlockID
	})
	return out
}

// TeachersForSubject lists the distinct teachers currently assigned to a
// subject in any group, sorted for determinism.
func (g *Grid) TeachersForSubject(subjectID string) []string {
	seen := make(map[string]struct{})
	for _, a := range g.byID {
		if a.SubjectID == subjectID {
			seen[a.TeacherID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of placed assignments.
func (g *Grid) Len() int {
	return len(g.byID)
}

// Clone copies the grid so a batch can be evaluated provisionally without
// touching the original.
func (g *Grid) Clone() *Grid {
	cp := &Grid{
		byID:      make(map[string]models.Assignment, len(g.byID)),
		byTeacher: make(map[teacherSlotKey]string, len(g.byTeacher)),
		byGroup:   make(map[groupSlotKey]string, len(g.byGroup)),
		byCell:    make(map[slotKey][]string, len(g.byCell)),
	}
	for k, v := range g.byID {
		cp.byID[k] = v
	}
	for k, v := range g.byTeacher {
		cp.byTeacher[k] = v
	}
	for k, v := range g.byGroup {
		cp.byGroup[k] = v
	}
	for k, v := range g.byCell {
		ids := make([]string, len(v))
		copy(ids, v)
		cp.byCell[k] = ids
	}
	return cp
}
