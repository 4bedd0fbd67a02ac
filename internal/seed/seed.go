package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yigit/gradpath/internal/app/graph"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/app/prereq"
	"github.com/yigit/gradpath/internal/app/repositories"
)

// catalogEntry mirrors one record of the external catalog feed dump. The
// feed's schema looseness stays at this boundary; the core only ever sees
// well-formed Course values.
type catalogEntry struct {
	Subject       string   `json:"subject"`
	CatalogNbr    string   `json:"catalogNbr"`
	Term          string   `json:"term"`
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`
	UnitsMin      float64  `json:"unitsMin"`
	UnitsMax      float64  `json:"unitsMax"`
	CrossListings []string `json:"crossListings,omitempty"`
	PrereqText    *string  `json:"prereqText,omitempty"`
}

// Seeder loads a catalog dump into the graph store for development and
// testing setups. Production ingestion is owned by the external pipeline.
type Seeder struct {
	repo      *repositories.GraphRepository
	threshold float64
	log       zerolog.Logger
}

// NewSeeder creates a Seeder. threshold is the UNSURE confidence cutoff
// used when classifying the stored edge set.
func NewSeeder(repo *repositories.GraphRepository, threshold float64, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, threshold: threshold, log: log}
}

// Run parses and upserts every course from the JSON catalog at path,
// stores the classified edge set, and bumps the graph version once so all
// derived caches invalidate.
func (s *Seeder) Run(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	courses := make([]*models.Course, 0, len(entries))
	parsed := 0
	for _, entry := range entries {
		course := &models.Course{
			ID:            models.CourseID(entry.Subject, entry.CatalogNbr, entry.Term),
			Subject:       entry.Subject,
			CatalogNbr:    entry.CatalogNbr,
			Term:          entry.Term,
			Title:         entry.Title,
			Description:   entry.Description,
			UnitsMin:      entry.UnitsMin,
			UnitsMax:      entry.UnitsMax,
			CrossListings: entry.CrossListings,
			PrereqText:    entry.PrereqText,
		}
		prereq.ParseCourse(course)
		if course.PrereqAST != nil {
			parsed++
		}

		if err := s.repo.UpsertCourse(ctx, course); err != nil {
			return err
		}
		courses = append(courses, course)
	}

	// Persist the classified edge set so downstream consumers can read
	// edges without reparsing.
	model := graph.NewBuilder(s.threshold).Build(courses, nil)
	if err := s.repo.ReplaceEdges(ctx, model.Edges); err != nil {
		return err
	}

	version, err := s.repo.IncrementVersion(ctx, "seed")
	if err != nil {
		return err
	}

	s.log.Info().
		Int("courses", len(courses)).
		Int("withPrereqs", parsed).
		Int("edges", len(model.Edges)).
		Int("unresolved", len(model.Unresolved)).
		Int64("version", version).
		Msg("Seeded course catalog")

	return nil
}
