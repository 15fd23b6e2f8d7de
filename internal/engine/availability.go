package engine

import "github.com/bocho8/chronos/internal/models"

// AvailabilityIndex answers "is teacher T reachable at (day, block)?" in
// O(1). Every (teacher, day, block) combination defaults to available;
// stored overrides flip individual slots.
type AvailabilityIndex struct {
	overrides map[teacherSlotKey]bool
}

// NewAvailabilityIndex builds the index from the persisted override set.
func NewAvailabilityIndex(slots []models.AvailabilitySlot) *AvailabilityIndex {
	idx := &AvailabilityIndex{overrides: make(map[teacherSlotKey]bool, len(slots))}
	for _, s := range slots {
		idx.overrides[teacherSlotKey{TeacherID: s.TeacherID, Day: s.Day, BlockID: s.BlockID}] = s.Available
	}
	return idx
}

// IsAvailable reports reachability for a teacher at a slot.
func (idx *AvailabilityIndex) IsAvailable(teacherID string, day models.Weekday, blockID string) bool {
	if v, ok := idx.overrides[teacherSlotKey{TeacherID: teacherID, Day: day, BlockID: blockID}]; ok {
		return v
	}
	return true
}

// Toggle records an override and returns the previous effective value.
func (idx *AvailabilityIndex) Toggle(teacherID string, day models.Weekday, blockID string, available bool) bool {
	prev := idx.IsAvailable(teacherID, day, blockID)
	idx.overrides[teacherSlotKey{TeacherID: teacherID, Day: day, BlockID: blockID}] = available
	return prev
}

// Clone copies the index for provisional evaluation.
func (idx *AvailabilityIndex) Clone() *AvailabilityIndex {
	cp := &AvailabilityIndex{overrides: make(map[teacherSlotKey]bool, len(idx.overrides))}
	for k, v := range idx.overrides {
		cp.overrides[k] = v
	}
	return cp
}
