package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradpath/internal/app/graph"
	"github.com/yigit/gradpath/internal/app/models"
)

func testCourse(subject, nbr string, units float64, relType models.RelationshipType, prereqs ...string) *models.Course {
	c := &models.Course{
		ID:         models.CourseID(subject, nbr, "FA25"),
		Subject:    subject,
		CatalogNbr: nbr,
		Term:       "FA25",
		Title:      subject + " " + nbr,
		UnitsMin:   units,
		UnitsMax:   units,
	}
	if len(prereqs) > 0 {
		conf := 0.9
		c.PrereqAST = &models.PrereqAST{Type: relType, Courses: prereqs}
		c.PrereqConfidence = &conf
	}
	return c
}

func buildModel(t *testing.T, courses ...*models.Course) *graph.Model {
	t.Helper()
	return graph.NewBuilder(graph.DefaultConfidenceThreshold).Build(courses, nil)
}

func chainModel(t *testing.T) *graph.Model {
	return buildModel(t,
		testCourse("CS", "1110", 4, ""),
		testCourse("CS", "2110", 4, models.RelPrerequisite, "CS 1110"),
		testCourse("CS", "3110", 4, models.RelPrerequisiteAnd, "CS 1110", "CS 2110"),
	)
}

func TestPack_ChainRespectsStrictOrdering(t *testing.T) {
	model := chainModel(t)
	priority := TopoOrder(set("CS 1110", "CS 2110", "CS 3110"), model.HardPredecessors())

	semesters, unplaced := Pack(model, priority, models.StudentState{}, 20, 8)

	require.Len(t, semesters, 3)
	assert.Empty(t, unplaced)
	assert.Equal(t, []string{"CS 1110"}, semesters[0].Courses)
	assert.Equal(t, []string{"CS 2110"}, semesters[1].Courses)
	assert.Equal(t, []string{"CS 3110"}, semesters[2].Courses)
	assert.Equal(t, 1, semesters[0].Number)
	assert.Equal(t, 4.0, semesters[0].TotalCredits)
	assert.Equal(t, []string{"CS 1110"}, semesters[0].Titles)
}

func TestPack_HorizonTooShortReportsUnplaced(t *testing.T) {
	model := chainModel(t)
	priority := TopoOrder(set("CS 1110", "CS 2110", "CS 3110"), model.HardPredecessors())

	semesters, unplaced := Pack(model, priority, models.StudentState{}, 20, 1)

	require.Len(t, semesters, 1)
	assert.Equal(t, []string{"CS 1110"}, semesters[0].Courses)
	assert.Equal(t, []string{"CS 2110", "CS 3110"}, unplaced)
}

func TestPack_CompletedAndInProgressSatisfyButAreNotScheduled(t *testing.T) {
	model := chainModel(t)
	priority := []string{"CS 1110", "CS 2110", "CS 3110"}
	student := models.StudentState{
		Completed:  []string{"CS 1110"},
		InProgress: []string{"CS 2110"},
	}

	semesters, unplaced := Pack(model, priority, student, 20, 8)

	require.Len(t, semesters, 1)
	assert.Equal(t, []string{"CS 3110"}, semesters[0].Courses)
	assert.Empty(t, unplaced)
}

func TestPack_CorequisitesShareASemester(t *testing.T) {
	model := buildModel(t,
		testCourse("MATH", "1910", 4, ""),
		testCourse("PHYS", "1112", 4, models.RelCorequisite, "MATH 1910"),
	)
	priority := TopoOrder(set("MATH 1910", "PHYS 1112"), model.HardPredecessors())

	semesters, unplaced := Pack(model, priority, models.StudentState{}, 10, 8)

	require.Len(t, semesters, 1)
	assert.ElementsMatch(t, []string{"MATH 1910", "PHYS 1112"}, semesters[0].Courses)
	assert.Empty(t, unplaced)
}

func TestPack_CreditCapSplitsSemesters(t *testing.T) {
	model := buildModel(t,
		testCourse("ART", "1100", 4, ""),
		testCourse("BIO", "1200", 4, ""),
	)

	semesters, unplaced := Pack(model, []string{"ART 1100", "BIO 1200"}, models.StudentState{}, 4, 8)

	require.Len(t, semesters, 2)
	assert.Equal(t, []string{"ART 1100"}, semesters[0].Courses)
	assert.Equal(t, []string{"BIO 1200"}, semesters[1].Courses)
	assert.Empty(t, unplaced)
}

func TestPack_CourseLargerThanCapIsUnplaced(t *testing.T) {
	model := buildModel(t, testCourse("ENGRD", "2110", 4, ""))

	semesters, unplaced := Pack(model, []string{"ENGRD 2110"}, models.StudentState{}, 3, 8)

	assert.Empty(t, semesters)
	assert.Equal(t, []string{"ENGRD 2110"}, unplaced)
}

func TestPack_PredecessorOutsidePlanIgnored(t *testing.T) {
	model := buildModel(t,
		testCourse("CS", "9990", 3, ""),
		testCourse("CS", "4820", 4, models.RelPrerequisite, "CS 9990"),
	)

	// CS 9990 exists in the graph but is not part of this plan and not in
	// the student's record; it must not block CS 4820 forever.
	semesters, unplaced := Pack(model, []string{"CS 4820"}, models.StudentState{}, 20, 8)

	require.Len(t, semesters, 1)
	assert.Equal(t, []string{"CS 4820"}, semesters[0].Courses)
	assert.Empty(t, unplaced)
}

func TestPack_UnknownCourseUsesDefaultWeight(t *testing.T) {
	model := buildModel(t)

	semesters, unplaced := Pack(model, []string{"XX 1000"}, models.StudentState{}, 20, 8)

	require.Len(t, semesters, 1)
	assert.Equal(t, models.DefaultCreditWeight, semesters[0].TotalCredits)
	assert.Empty(t, unplaced)
}

func TestAlternatives_ConvergentStrategiesDeduplicate(t *testing.T) {
	model := chainModel(t)
	order := TopoOrder(set("CS 1110", "CS 2110", "CS 3110"), model.HardPredecessors())

	plans := Alternatives(model, order, []string{"CS 3110"}, models.StudentState{}, 20, 8, 4)

	// A strict chain admits exactly one valid packing regardless of
	// strategy, so every alternative collapses into one plan.
	require.Len(t, plans, 1)
	assert.Equal(t, 1, plans[0].Rank)
	assert.Equal(t, "catalog-order", plans[0].Strategy)
	assert.Equal(t, 3, plans[0].TotalCourses)
	assert.Equal(t, model.Meta.Version, plans[0].GraphVersion)
	assert.NotEmpty(t, plans[0].ID)
}

func TestAlternatives_StrategiesProduceDistinctPlans(t *testing.T) {
	model := buildModel(t,
		testCourse("ART", "4000", 4, ""),
		testCourse("BIO", "1000", 1, ""),
	)
	order := TopoOrder(set("ART 4000", "BIO 1000"), model.HardPredecessors())

	plans := Alternatives(model, order, nil, models.StudentState{}, 4, 8, 10)

	// Catalog order fills with ART 4000 first; foundational-first and
	// lightest-first lead with BIO 1000. Two distinct packings survive.
	require.Len(t, plans, 2)
	assert.Equal(t, []string{"ART 4000"}, plans[0].Semesters[0].Courses)
	assert.Equal(t, []string{"BIO 1000"}, plans[1].Semesters[0].Courses)
	assert.Equal(t, 1, plans[0].Rank)
	assert.Equal(t, 2, plans[1].Rank)
	assert.NotEqual(t, plans[0].ID, plans[1].ID)
}

func TestAlternatives_RespectsRequestedCount(t *testing.T) {
	model := buildModel(t,
		testCourse("ART", "4000", 4, ""),
		testCourse("BIO", "1000", 1, ""),
	)
	order := TopoOrder(set("ART 4000", "BIO 1000"), model.HardPredecessors())

	plans := Alternatives(model, order, nil, models.StudentState{}, 4, 8, 1)

	assert.Len(t, plans, 1)
}
