package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/app/planner"
	"github.com/yigit/gradpath/internal/pkg/apperrors"
)

func testCatalog() []*models.Course {
	return []*models.Course{
		catalogCourse("CS", "1110", 4, ""),
		catalogCourse("MATH", "1910", 4, ""),
		catalogCourse("CS", "2110", 4, models.RelPrerequisite, "CS 1110"),
		catalogCourse("CS", "2800", 3, models.RelPrerequisite, "MATH 1910"),
		catalogCourse("CS", "3110", 4, models.RelPrerequisiteAnd, "CS 2110", "CS 2800"),
	}
}

func newTestPlannerService(store GraphStore) *PlannerService {
	return NewPlannerService(newTestGraphService(store, time.Minute), planner.DefaultLimits())
}

func TestPlanSemesters_BuildsPrerequisiteClosure(t *testing.T) {
	svc := newTestPlannerService(newFakeStore(testCatalog()...))

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 3110"},
		NumAlternatives:       3,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.MissingTargets)
	assert.Equal(t, int64(1), resp.GraphVersion)
	require.NotEmpty(t, resp.Plans)

	plan := resp.Plans[0]
	assert.Equal(t, "catalog-order", plan.Strategy)
	assert.Equal(t, 5, plan.TotalCourses)
	assert.Empty(t, plan.Unplaced)

	require.Len(t, plan.Semesters, 3)
	assert.ElementsMatch(t, []string{"CS 1110", "MATH 1910"}, plan.Semesters[0].Courses)
	assert.ElementsMatch(t, []string{"CS 2110", "CS 2800"}, plan.Semesters[1].Courses)
	assert.Equal(t, []string{"CS 3110"}, plan.Semesters[2].Courses)

	// Every hard prerequisite placed in the plan sits strictly earlier
	// than its dependent.
	semesterOf := make(map[string]int)
	for _, sem := range plan.Semesters {
		for _, code := range sem.Courses {
			semesterOf[code] = sem.Number
		}
	}
	assert.Less(t, semesterOf["CS 1110"], semesterOf["CS 2110"])
	assert.Less(t, semesterOf["CS 2110"], semesterOf["CS 3110"])
	assert.Less(t, semesterOf["CS 2800"], semesterOf["CS 3110"])
}

func TestPlanSemesters_CompletedCoursesSkipScheduling(t *testing.T) {
	svc := newTestPlannerService(newFakeStore(testCatalog()...))

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 3110"},
		NumAlternatives:       1,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
		Student: models.StudentState{
			Completed:  []string{"CS 1110", "MATH 1910", "CS 2110"},
			InProgress: []string{"CS 2800"},
		},
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Plans)
	plan := resp.Plans[0]
	require.Len(t, plan.Semesters, 1)
	assert.Equal(t, []string{"CS 3110"}, plan.Semesters[0].Courses)
	assert.Equal(t, 1, plan.TotalCourses)
}

func TestPlanSemesters_UnknownTargetDegradesNotFails(t *testing.T) {
	svc := newTestPlannerService(newFakeStore(testCatalog()...))

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 3110", "XX 9999"},
		NumAlternatives:       1,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"XX 9999"}, resp.MissingTargets)
	require.NotEmpty(t, resp.Plans, "known targets are still planned")
	assert.Equal(t, 5, resp.Plans[0].TotalCourses)
}

func TestPlanSemesters_NothingToScheduleReturnsEmptyPlans(t *testing.T) {
	svc := newTestPlannerService(newFakeStore(testCatalog()...))

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 1110"},
		NumAlternatives:       1,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
		Student: models.StudentState{
			Completed: []string{"CS 1110"},
		},
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Plans)
	assert.Empty(t, resp.Plans)
	assert.Empty(t, resp.MissingTargets)
	assert.Equal(t, int64(1), resp.GraphVersion)
}

func TestPlanSemesters_ClampsOutOfRangeParameters(t *testing.T) {
	svc := newTestPlannerService(newFakeStore(testCatalog()...))

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 2110"},
		NumAlternatives:       0,   // clamped to 1
		SemestersAvailable:    999, // clamped to 20
		MaxCreditsPerSemester: -3,  // clamped to 1
	})
	require.NoError(t, err)

	// One credit per semester fits nothing; the plan degrades to fully
	// unplaced rather than erroring.
	require.Len(t, resp.Plans, 1)
	assert.Empty(t, resp.Plans[0].Semesters)
	assert.ElementsMatch(t, []string{"CS 1110", "CS 2110"}, resp.Plans[0].Unplaced)
}

func TestPlanSemesters_StoreFailureSurfaces(t *testing.T) {
	store := newFakeStore(testCatalog()...)
	store.failFetch = true
	svc := newTestPlannerService(store)

	_, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 3110"},
		NumAlternatives:       1,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGraphUnavailable))
}

func TestPlanSemesters_PlansCarryGraphVersion(t *testing.T) {
	store := newFakeStore(testCatalog()...)
	graphs := newTestGraphService(store, time.Minute)
	svc := NewPlannerService(graphs, planner.DefaultLimits())

	_, err := graphs.BumpVersion(context.Background(), "reindex")
	require.NoError(t, err)

	resp, err := svc.PlanSemesters(context.Background(), models.PlanningRequest{
		TargetCourses:         []string{"CS 3110"},
		NumAlternatives:       1,
		SemestersAvailable:    8,
		MaxCreditsPerSemester: 18,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.GraphVersion)
	require.NotEmpty(t, resp.Plans)
	assert.Equal(t, int64(2), resp.Plans[0].GraphVersion)
}
