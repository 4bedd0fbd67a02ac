// Package planner computes dependency-respecting, credit-bounded semester
// plans over a built course graph. All planner inputs pass through
// Normalize first, which caps worst-case algorithmic cost; no operation in
// this package blocks, errors or panics for any input.
package planner

import (
	"fmt"

	"github.com/yigit/gradpath/internal/app/models"
)

// Limits are the clamping bounds for caller-supplied planning parameters.
// Values are configuration, not law; DefaultLimits gives the product
// defaults.
type Limits struct {
	MaxAlternatives       int
	MaxSemesters          int
	MaxCreditsPerSemester int
	MaxTargetCourses      int
	MaxCompletedCourses   int
}

// DefaultLimits returns the default planning bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxAlternatives:       10,
		MaxSemesters:          20,
		MaxCreditsPerSemester: 30,
		MaxTargetCourses:      50,
		MaxCompletedCourses:   1000,
	}
}

// NormalizeResult carries the clamped request plus a record of which
// fields were adjusted. Adjustments are informational, never errors:
// planner parameters originate from untrusted callers, and the policy is
// silent correction rather than rejection.
type NormalizeResult struct {
	Request  models.PlanningRequest
	Adjusted []string
}

// Normalize clamps and deduplicates a planning request. It is a total,
// idempotent function: normalizing twice yields the same request as
// normalizing once.
func (l Limits) Normalize(req models.PlanningRequest) NormalizeResult {
	out := NormalizeResult{Request: req}

	out.Request.NumAlternatives = out.clamp("numAlternatives", req.NumAlternatives, 1, l.MaxAlternatives)
	out.Request.SemestersAvailable = out.clamp("semestersAvailable", req.SemestersAvailable, 1, l.MaxSemesters)
	out.Request.MaxCreditsPerSemester = out.clamp("maxCreditsPerSemester", req.MaxCreditsPerSemester, 1, l.MaxCreditsPerSemester)

	out.Request.TargetCourses = out.truncateList("targetCourses", req.TargetCourses, l.MaxTargetCourses)
	out.Request.Student.Completed = out.dedupeList("completedCourses", req.Student.Completed, l.MaxCompletedCourses)
	out.Request.Student.InProgress = out.dedupeList("inProgressCourses", req.Student.InProgress, l.MaxCompletedCourses)

	return out
}

func (r *NormalizeResult) clamp(field string, v, lo, hi int) int {
	if v < lo {
		r.note(field, v, lo)
		return lo
	}
	if v > hi {
		r.note(field, v, hi)
		return hi
	}
	return v
}

// truncateList coerces a nil list to empty and caps its length.
func (r *NormalizeResult) truncateList(field string, list []string, max int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > max {
		r.note(field, len(list), max)
		list = list[:max]
	}
	return list
}

// dedupeList removes duplicates preserving first-seen order, then caps
// the length.
func (r *NormalizeResult) dedupeList(field string, list []string, max int) []string {
	if list == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(list))
	unique := make([]string, 0, len(list))
	for _, item := range list {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	if len(unique) > max {
		r.note(field, len(unique), max)
		unique = unique[:max]
	}
	return unique
}

func (r *NormalizeResult) note(field string, from, to int) {
	r.Adjusted = append(r.Adjusted, fmt.Sprintf("%s: %d -> %d", field, from, to))
}
