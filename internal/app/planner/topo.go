package planner

import (
	"sort"

	"github.com/yigit/gradpath/internal/pkg/logger"
)

// TopoOrder linearizes courses so that every course appears after its
// predecessors, using Kahn's algorithm with a deterministic tie-break
// (course code ascending). Two guarantees with different strengths:
//
//   - Completeness is hard: the output contains exactly the input set, for
//     arbitrary predecessor maps. Predecessor references outside the input
//     set are ignored for ordering but never remove the dependent course.
//   - Ordering correctness is best-effort: when a cycle or unresolved
//     chain stalls the algorithm, the remaining courses are appended in
//     sorted order rather than dropped.
func TopoOrder(courses map[string]struct{}, predecessors map[string]map[string]struct{}) []string {
	// Restrict each course's predecessors to the scheduling set.
	inDegree := make(map[string]int, len(courses))
	successors := make(map[string][]string, len(courses))
	for course := range courses {
		degree := 0
		for pred := range predecessors[course] {
			if _, in := courses[pred]; !in {
				continue
			}
			degree++
			successors[pred] = append(successors[pred], course)
		}
		inDegree[course] = degree
	}

	ready := make([]string, 0, len(courses))
	for course, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, course)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(courses))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		freed := false
		for _, succ := range successors[current] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
				freed = true
			}
		}
		if freed {
			sort.Strings(ready)
		}
	}

	// Cycle or unresolved chain: emit the stragglers deterministically.
	if len(order) != len(courses) {
		placed := make(map[string]struct{}, len(order))
		for _, course := range order {
			placed[course] = struct{}{}
		}
		var remaining []string
		for course := range courses {
			if _, ok := placed[course]; !ok {
				remaining = append(remaining, course)
			}
		}
		sort.Strings(remaining)
		logger.Warn().
			Int("ordered", len(order)).
			Int("total", len(courses)).
			Msg("Topological sort incomplete, appending remaining courses")
		order = append(order, remaining...)
	}

	return order
}
