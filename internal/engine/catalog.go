package engine

import (
	"sort"

	"github.com/bocho8/chronos/internal/models"
)

// Catalog provides O(1) lookups over the read-only reference snapshot the
// engine is built against for a single request.
type Catalog struct {
	groups     map[string]models.Group
	subjects   map[string]models.Subject
	teachers   map[string]models.Teacher
	guidelines map[string]models.Guideline
	blocks     map[string]models.TimeBlock
	ordered    []models.TimeBlock
}

// NewCatalog indexes a snapshot. Time blocks are ordered by start time.
func NewCatalog(snap models.Catalog) *Catalog {
	c := &Catalog{
		groups:     make(map[string]models.Group, len(snap.Groups)),
		subjects:   make(map[string]models.Subject, len(snap.Subjects)),
		teachers:   make(map[string]models.Teacher, len(snap.Teachers)),
		guidelines: make(map[string]models.Guideline, len(snap.Guidelines)),
		blocks:     make(map[string]models.TimeBlock, len(snap.TimeBlocks)),
	}
	for _, g := range snap.Groups {
		c.groups[g.ID] = g
	}
	for _, s := range snap.Subjects {
		c.subjects[s.ID] = s
	}
	for _, t := range snap.Teachers {
		c.teachers[t.ID] = t
	}
	for _, g := range snap.Guidelines {
		c.guidelines[g.ID] = g
	}
	c.ordered = make([]models.TimeBlock, len(snap.TimeBlocks))
	copy(c.ordered, snap.TimeBlocks)
	sort.SliceStable(c.ordered, func(i, j int) bool {
		if c.ordered[i].StartTime != c.ordered[j].StartTime {
			return c.ordered[i].StartTime < c.ordered[j].StartTime
		}
		return c.ordered[i].Position < c.ordered[j].Position
	})
	for _, b := range c.ordered {
		c.blocks[b.ID] = b
	}
	return c
}

// Group resolves a group by id.
func (c *Catalog) Group(id string) (models.Group, bool) {
	g, ok := c.groups[id]
	return g, ok
}

// Subject resolves a subject by id.
func (c *Catalog) Subject(id string) (models.Subject, bool) {
	s, ok := c.subjects[id]
	return s, ok
}

// Teacher resolves a teacher by id.
func (c *Catalog) Teacher(id string) (models.Teacher, bool) {
	t, ok := c.teachers[id]
	return t, ok
}

// Guideline resolves a guideline by id.
func (c *Catalog) Guideline(id string) (models.Guideline, bool) {
	g, ok := c.guidelines[id]
	return g, ok
}

// Block resolves a time block by id.
func (c *Catalog) Block(id string) (models.TimeBlock, bool) {
	b, ok := c.blocks[id]
	return b, ok
}

// Blocks returns the time blocks in start-time order.
func (c *Catalog) Blocks() []models.TimeBlock {
	return c.ordered
}

// GuidelineForSubject resolves the guideline bound to a subject, if any.
func (c *Catalog) GuidelineForSubject(subject models.Subject) (models.Guideline, bool) {
	if subject.GuidelineID == nil {
		return models.Guideline{}, false
	}
	return c.Guideline(*subject.GuidelineID)
}
