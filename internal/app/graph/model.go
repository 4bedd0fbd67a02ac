// Package graph builds and queries the in-memory course/prerequisite
// graph for one term snapshot. A built Model is immutable; concurrent
// planning requests may read it without coordination. A version bump
// produces a new Model rather than mutating the old one.
package graph

import (
	"github.com/yigit/gradpath/internal/app/models"
)

// UnresolvedRef records a prerequisite reference that named a course the
// snapshot does not contain. Diagnostics only, never fatal: the dependent
// course stays in the graph without that edge.
type UnresolvedRef struct {
	CourseID    string `json:"courseId"`
	MissingCode string `json:"missingCode"`
	Term        string `json:"term"`
}

// Model is one immutable graph snapshot: courses keyed by ID, classified
// prerequisite edges, and the metadata the snapshot was built against.
type Model struct {
	Meta       *models.GraphMetadata
	Edges      []*models.PrerequisiteEdge
	Unresolved []UnresolvedRef

	courses map[string]*models.Course // by ID
	byCode  map[string]*models.Course // term-independent code fallback
}

// Course looks up a course by its full identifier.
func (m *Model) Course(id string) (*models.Course, bool) {
	c, ok := m.courses[id]
	return c, ok
}

// CourseByCode resolves a term-independent code like "CS 2110".
func (m *Model) CourseByCode(code string) (*models.Course, bool) {
	c, ok := m.byCode[code]
	return c, ok
}

// Courses returns all courses in the snapshot keyed by ID. The returned
// map must not be mutated.
func (m *Model) Courses() map[string]*models.Course {
	return m.courses
}

// NodeCount returns the number of courses in the snapshot.
func (m *Model) NodeCount() int {
	return len(m.courses)
}

// HardPredecessors maps each course code to the set of course codes that
// must be completed in a strictly earlier semester: MANDATORY and
// PREREQUISITE-family edges, including their _OR_PERMISSION variants.
// UNSURE, RECOMMENDED and loose group edges never constrain a plan.
func (m *Model) HardPredecessors() map[string]map[string]struct{} {
	return m.predecessors(func(t models.RelationshipType) bool {
		return t.IsHardPrerequisite()
	})
}

// CoreqPredecessors maps each course code to its corequisites, which may
// share a semester with the dependent course.
func (m *Model) CoreqPredecessors() map[string]map[string]struct{} {
	return m.predecessors(func(t models.RelationshipType) bool {
		return t.IsCorequisite()
	})
}

func (m *Model) predecessors(match func(models.RelationshipType) bool) map[string]map[string]struct{} {
	preds := make(map[string]map[string]struct{})
	for _, edge := range m.Edges {
		if !match(edge.Type) {
			continue
		}
		from, okFrom := m.courses[edge.FromID]
		to, okTo := m.courses[edge.ToID]
		if !okFrom || !okTo {
			continue
		}
		set, ok := preds[to.Code()]
		if !ok {
			set = make(map[string]struct{})
			preds[to.Code()] = set
		}
		set[from.Code()] = struct{}{}
	}
	return preds
}
