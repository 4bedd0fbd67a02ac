package planner

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/gradpath/internal/app/graph"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// strategy reorders the topological order among equally eligible courses.
// Every strategy must preserve plan validity; it only changes which of the
// currently placeable courses get packed first.
type strategy struct {
	name    string
	reorder func(order []string, model *graph.Model, targets []string) []string
}

// strategies are applied in a fixed sequence, so alternative generation is
// deterministic. Identical outcomes are deduplicated before returning.
var strategies = []strategy{
	{name: "catalog-order", reorder: func(order []string, _ *graph.Model, _ []string) []string {
		return order
	}},
	{name: "foundational-first", reorder: reorderFoundational},
	{name: "target-subjects-first", reorder: reorderTargetSubjects},
	{name: "lightest-first", reorder: reorderLightest},
}

// Pack walks the priority order and greedily places each course into the
// earliest semester where its in-plan hard prerequisites sit strictly
// earlier (corequisites may share the semester) and the credit sum stays
// within maxCredits. Courses that do not fit within the semester horizon
// are reported as unplaced, never dropped silently and never fatal.
func Pack(
	model *graph.Model,
	priority []string,
	student models.StudentState,
	maxCredits float64,
	semestersAvailable int,
) ([]models.SemesterPlan, []string) {
	hardPreds := model.HardPredecessors()
	coreqPreds := model.CoreqPredecessors()

	inPlan := make(map[string]struct{}, len(priority))
	for _, code := range priority {
		inPlan[code] = struct{}{}
	}

	// Completed and in-progress courses satisfy prerequisites but are
	// never scheduled.
	satisfied := make(map[string]struct{})
	for _, code := range student.Completed {
		satisfied[code] = struct{}{}
	}
	for _, code := range student.InProgress {
		satisfied[code] = struct{}{}
	}

	var semesters []models.SemesterPlan
	placed := make(map[string]struct{})

	for num := 1; num <= semestersAvailable; num++ {
		var (
			courses []string
			titles  []string
			credits float64
		)
		added := make(map[string]struct{})

		for _, code := range priority {
			if _, done := satisfied[code]; done {
				continue
			}
			if _, already := placed[code]; already {
				continue
			}
			if _, now := added[code]; now {
				continue
			}
			if !eligible(code, hardPreds, coreqPreds, inPlan, satisfied, placed, added) {
				continue
			}

			weight := models.DefaultCreditWeight
			title := ""
			if course, ok := model.CourseByCode(code); ok {
				weight = course.CreditWeight()
				title = course.Title
			}
			if credits+weight > maxCredits {
				continue
			}

			courses = append(courses, code)
			titles = append(titles, title)
			credits += weight
			added[code] = struct{}{}
		}

		for code := range added {
			placed[code] = struct{}{}
		}

		if len(courses) > 0 {
			semesters = append(semesters, models.SemesterPlan{
				Number:       num,
				Courses:      courses,
				Titles:       titles,
				TotalCredits: credits,
			})
		}

		if len(placed) == remainingCount(priority, satisfied) {
			break
		}
	}

	var unplaced []string
	for _, code := range priority {
		if _, done := satisfied[code]; done {
			continue
		}
		if _, ok := placed[code]; !ok {
			unplaced = append(unplaced, code)
		}
	}

	return semesters, unplaced
}

// eligible checks a course's predecessor constraints. Hard prerequisites
// must be satisfied or placed in an earlier semester; corequisites may
// also be placed in the current one. Predecessors outside the plan and
// not in the student's record are ignored rather than blocking forever.
func eligible(
	code string,
	hardPreds, coreqPreds map[string]map[string]struct{},
	inPlan, satisfied, placed, added map[string]struct{},
) bool {
	for pred := range hardPreds[code] {
		if _, ok := satisfied[pred]; ok {
			continue
		}
		if _, relevant := inPlan[pred]; !relevant {
			continue
		}
		if _, ok := placed[pred]; !ok {
			return false
		}
	}
	for pred := range coreqPreds[code] {
		if _, ok := satisfied[pred]; ok {
			continue
		}
		if _, relevant := inPlan[pred]; !relevant {
			continue
		}
		if _, ok := placed[pred]; ok {
			continue
		}
		if _, ok := added[pred]; !ok {
			return false
		}
	}
	return true
}

func remainingCount(priority []string, satisfied map[string]struct{}) int {
	count := 0
	for _, code := range priority {
		if _, done := satisfied[code]; !done {
			count++
		}
	}
	return count
}

// Alternatives generates up to numAlternatives distinct plans by varying
// the tie-break strategy among equally eligible courses. Structurally
// identical plans are filtered; fewer plans than requested is a valid
// outcome when the strategies converge.
func Alternatives(
	model *graph.Model,
	order []string,
	targets []string,
	student models.StudentState,
	maxCredits float64,
	semestersAvailable int,
	numAlternatives int,
) []*models.Plan {
	var plans []*models.Plan
	seen := make(map[string]struct{})

	for _, strat := range strategies {
		if len(plans) >= numAlternatives {
			break
		}

		priority := strat.reorder(order, model, targets)
		semesters, unplaced := Pack(model, priority, student, maxCredits, semestersAvailable)

		sig := signature(semesters)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}

		total := 0
		for _, sem := range semesters {
			total += len(sem.Courses)
		}

		plans = append(plans, &models.Plan{
			ID:           uuid.New().String(),
			Rank:         len(plans) + 1,
			Strategy:     strat.name,
			Semesters:    semesters,
			Unplaced:     unplaced,
			TotalCourses: total,
			GraphVersion: model.Meta.Version,
		})
	}

	logger.Debug().
		Int("requested", numAlternatives).
		Int("generated", len(plans)).
		Msg("Generated alternative plans")

	return plans
}

// signature folds a plan's semester assignments into a comparable key.
// Order within a semester does not matter.
func signature(semesters []models.SemesterPlan) string {
	var sb strings.Builder
	for _, sem := range semesters {
		codes := append([]string(nil), sem.Courses...)
		sort.Strings(codes)
		sb.WriteString(strconv.Itoa(sem.Number))
		sb.WriteString(":")
		sb.WriteString(strings.Join(codes, ","))
		sb.WriteString("|")
	}
	return sb.String()
}

// reorderFoundational prioritizes lower catalog numbers, the usual proxy
// for foundational courses. Stable with respect to the topological order.
func reorderFoundational(order []string, _ *graph.Model, _ []string) []string {
	out := append([]string(nil), order...)
	sort.SliceStable(out, func(i, j int) bool {
		return catalogNumber(out[i]) < catalogNumber(out[j])
	})
	return out
}

// reorderTargetSubjects moves courses sharing a subject with the caller's
// targets to the front.
func reorderTargetSubjects(order []string, _ *graph.Model, targets []string) []string {
	subjects := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		subjects[subjectOf(target)] = struct{}{}
	}
	out := append([]string(nil), order...)
	sort.SliceStable(out, func(i, j int) bool {
		_, iTarget := subjects[subjectOf(out[i])]
		_, jTarget := subjects[subjectOf(out[j])]
		return iTarget && !jTarget
	})
	return out
}

// reorderLightest prefers lower credit weights first, packing more small
// courses into early semesters.
func reorderLightest(order []string, model *graph.Model, _ []string) []string {
	out := append([]string(nil), order...)
	weight := func(code string) float64 {
		if course, ok := model.CourseByCode(code); ok {
			return course.CreditWeight()
		}
		return models.DefaultCreditWeight
	}
	sort.SliceStable(out, func(i, j int) bool {
		return weight(out[i]) < weight(out[j])
	})
	return out
}

func subjectOf(code string) string {
	if idx := strings.IndexByte(code, ' '); idx > 0 {
		return code[:idx]
	}
	return code
}

func catalogNumber(code string) int {
	fields := strings.Fields(code)
	if len(fields) < 2 {
		return 0
	}
	digits := strings.TrimFunc(fields[1], func(r rune) bool {
		return r < '0' || r > '9'
	})
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
