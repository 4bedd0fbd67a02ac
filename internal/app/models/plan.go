package models

// StudentState is the caller-supplied academic state. The planner treats
// in-progress courses as satisfied prerequisites and never schedules them.
type StudentState struct {
	Completed  []string `json:"completedCourses"`
	InProgress []string `json:"inProgressCourses"`
}

// PlanningRequest asks for course sequences leading to the target courses.
// Values originate from untrusted callers and are clamped, never rejected,
// before they reach the planner.
type PlanningRequest struct {
	TargetCourses         []string     `json:"targetCourses"`
	NumAlternatives       int          `json:"numAlternatives"`
	SemestersAvailable    int          `json:"semestersAvailable"`
	MaxCreditsPerSemester int          `json:"maxCreditsPerSemester"`
	Student               StudentState `json:"student"`
}

// SemesterPlan is one semester's course load within a plan.
type SemesterPlan struct {
	Number       int      `json:"semesterNumber"`
	Courses      []string `json:"courses"` // course codes
	Titles       []string `json:"courseTitles"`
	TotalCredits float64  `json:"totalCredits"`
}

// Plan is an ordered sequence of semesters satisfying prerequisite order:
// every hard prerequisite that is also in the plan sits in a strictly
// earlier semester than its dependent (corequisites may share a semester).
// Courses that could not be placed within the semester and credit budget
// are listed in Unplaced rather than failing the plan.
type Plan struct {
	ID           string         `json:"id"`
	Rank         int            `json:"rank"`
	Strategy     string         `json:"strategy"`
	Semesters    []SemesterPlan `json:"semesters"`
	Unplaced     []string       `json:"unplacedCourses"`
	TotalCourses int            `json:"totalCourses"`
	GraphVersion int64          `json:"graphVersion"`
}

// PlanResponse is what the caller surface receives. GraphVersion lets the
// caller detect staleness against the current graph.
type PlanResponse struct {
	Plans          []*Plan  `json:"plans"`
	MissingTargets []string `json:"missingTargets,omitempty"`
	GraphVersion   int64    `json:"graphVersion"`
}
