package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/app/planner"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// PlannerService orchestrates degree planning: normalize the request,
// take a graph snapshot, collect the prerequisite closure of the targets,
// order it, and pack it into alternative semester plans.
type PlannerService struct {
	graphs *GraphService
	limits planner.Limits
	log    zerolog.Logger
}

// NewPlannerService creates a PlannerService.
func NewPlannerService(graphs *GraphService, limits planner.Limits) *PlannerService {
	return &PlannerService{
		graphs: graphs,
		limits: limits,
		log:    logger.Get(),
	}
}

// PlanSemesters computes up to NumAlternatives semester plans for the
// request's target courses. The only error it returns is graph-store
// unavailability; every other anomaly degrades into the response
// (missing targets, unplaced courses, clamped parameters).
func (s *PlannerService) PlanSemesters(ctx context.Context, req models.PlanningRequest) (*models.PlanResponse, error) {
	norm := s.limits.Normalize(req)
	if len(norm.Adjusted) > 0 {
		s.log.Debug().Strs("adjusted", norm.Adjusted).Msg("Clamped planning parameters")
	}
	req = norm.Request

	model, err := s.graphs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	response := &models.PlanResponse{
		Plans:        []*models.Plan{},
		GraphVersion: model.Meta.Version,
	}

	hardPreds := model.HardPredecessors()

	// Prerequisite closure of all targets: the targets themselves plus
	// every transitive hard prerequisite known to the graph.
	needed := make(map[string]struct{})
	for _, target := range req.TargetCourses {
		if _, ok := model.CourseByCode(target); !ok {
			s.log.Warn().Str("course", target).Msg("Target course not found in graph")
			response.MissingTargets = append(response.MissingTargets, target)
			continue
		}
		collectAncestors(target, hardPreds, needed)
		needed[target] = struct{}{}
	}

	// Courses already completed or in progress need no scheduling.
	done := make(map[string]struct{}, len(req.Student.Completed)+len(req.Student.InProgress))
	for _, code := range req.Student.Completed {
		done[code] = struct{}{}
	}
	for _, code := range req.Student.InProgress {
		done[code] = struct{}{}
	}

	toSchedule := make(map[string]struct{}, len(needed))
	for code := range needed {
		if _, ok := done[code]; !ok {
			toSchedule[code] = struct{}{}
		}
	}

	if len(toSchedule) == 0 {
		return response, nil
	}

	order := planner.TopoOrder(toSchedule, hardPreds)

	response.Plans = planner.Alternatives(
		model,
		order,
		req.TargetCourses,
		req.Student,
		float64(req.MaxCreditsPerSemester),
		req.SemestersAvailable,
		req.NumAlternatives,
	)

	s.log.Info().
		Int("targets", len(req.TargetCourses)).
		Int("toSchedule", len(toSchedule)).
		Int("plans", len(response.Plans)).
		Int64("graphVersion", model.Meta.Version).
		Msg("Computed semester plans")

	return response, nil
}

// collectAncestors walks the hard-prerequisite map upwards from code,
// adding every reachable predecessor to out. Cycles terminate because
// visited nodes are skipped.
func collectAncestors(code string, preds map[string]map[string]struct{}, out map[string]struct{}) {
	for pred := range preds[code] {
		if _, seen := out[pred]; seen {
			continue
		}
		out[pred] = struct{}{}
		collectAncestors(pred, preds, out)
	}
}
