package graph

import (
	"fmt"
	"math"
	"time"

	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// DefaultConfidenceThreshold is the cutoff below which an edge's type is
// overridden to UNSURE. Tunable through configuration.
const DefaultConfidenceThreshold = 0.35

// Builder assembles a Model from ingested courses. Edge classification
// comes from each course's parsed AST; the confidence threshold rule is
// applied here, at construction time, never at parse time.
type Builder struct {
	ConfidenceThreshold float64
}

// NewBuilder creates a Builder with the given UNSURE threshold.
func NewBuilder(confidenceThreshold float64) *Builder {
	return &Builder{ConfidenceThreshold: confidenceThreshold}
}

// Build constructs an immutable graph snapshot from courses. Referenced
// codes with no matching course are recorded as unresolved references.
// Duplicate edges (same from/to/type/confidence) are merged. meta may be
// nil; node and edge counts are always recomputed from the build.
func (b *Builder) Build(courses []*models.Course, meta *models.GraphMetadata) *Model {
	model := &Model{
		courses: make(map[string]*models.Course, len(courses)),
		byCode:  make(map[string]*models.Course, len(courses)),
	}

	// O(1) lookup index: exact (subject, catalog, term) key plus a
	// cross-term fallback keyed by course code. Cross-listed aliases
	// resolve through the same index.
	exact := make(map[string]*models.Course, len(courses))
	for _, course := range courses {
		model.courses[course.ID] = course
		exact[exactKey(course.Code(), course.Term)] = course
		model.byCode[course.Code()] = course
		for _, alias := range course.CrossListings {
			exact[exactKey(alias, course.Term)] = course
			if _, taken := model.byCode[alias]; !taken {
				model.byCode[alias] = course
			}
		}
	}

	seen := make(map[string]struct{})
	for _, course := range courses {
		if course.PrereqAST == nil || len(course.PrereqAST.Courses) == 0 {
			continue
		}

		confidence := 0.0
		if course.PrereqConfidence != nil {
			confidence = *course.PrereqConfidence
		}

		edgeType := course.PrereqAST.Type
		if confidence < b.ConfidenceThreshold {
			// Hard rule: low-confidence edges must be distinguishable
			// from asserted ones, whatever their semantic kind.
			edgeType = models.RelUnsure
		}

		for _, code := range course.PrereqAST.Courses {
			prereq, ok := exact[exactKey(code, course.Term)]
			if !ok {
				prereq, ok = model.byCode[code]
			}
			if !ok {
				model.Unresolved = append(model.Unresolved, UnresolvedRef{
					CourseID:    course.ID,
					MissingCode: code,
					Term:        course.Term,
				})
				continue
			}

			edge := &models.PrerequisiteEdge{
				FromID:     prereq.ID,
				ToID:       course.ID,
				Type:       edgeType,
				Confidence: round3(confidence),
			}
			key := fmt.Sprintf("%s|%s|%s|%.3f", edge.FromID, edge.ToID, edge.Type, edge.Confidence)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			model.Edges = append(model.Edges, edge)
		}
	}

	model.Meta = buildMeta(meta, len(model.courses), len(model.Edges))

	logger.Info().
		Int64("version", model.Meta.Version).
		Int("nodes", model.Meta.NodeCount).
		Int("edges", model.Meta.EdgeCount).
		Int("unresolved", len(model.Unresolved)).
		Msg("Built course graph snapshot")

	return model
}

func buildMeta(meta *models.GraphMetadata, nodes, edges int) *models.GraphMetadata {
	out := &models.GraphMetadata{
		Version:     1,
		LastUpdated: time.Now(),
		Source:      "in-memory",
	}
	if meta != nil {
		out.Version = meta.Version
		out.LastUpdated = meta.LastUpdated
		out.Source = meta.Source
	}
	out.NodeCount = nodes
	out.EdgeCount = edges
	return out
}

func exactKey(code, term string) string {
	return code + "|" + term
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
