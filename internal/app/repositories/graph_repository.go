package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/pkg/apperrors"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// GraphRepository is the Postgres adapter behind the services.GraphStore
// interface. The planning core never writes course or edge data through
// it; only the seeder and migrator touch the write paths.
type GraphRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGraphRepository creates a new GraphRepository.
func NewGraphRepository(db *pgxpool.Pool) *GraphRepository {
	return &GraphRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{
	"id", "subject", "catalog_nbr", "term", "title", "description",
	"units_min", "units_max", "cross_listings",
	"prereq_text", "prereq_ast", "prereq_confidence",
}

// FetchCourses returns every course in the store, parsed ASTs included.
func (r *GraphRepository) FetchCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("subject", "catalog_nbr", "term").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	return courses, nil
}

// GetCourseByID retrieves a single course.
func (r *GraphRepository) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found: "+id)
	}
	return scanCourse(rows)
}

// FetchEdges returns the pre-classified prerequisite edges, when the
// store carries them. The in-memory builder's output is authoritative
// otherwise.
func (r *GraphRepository) FetchEdges(ctx context.Context) ([]*models.PrerequisiteEdge, error) {
	sql, args, err := r.sb.Select("from_course_id", "to_course_id", "type", "confidence").
		From("prerequisite_edges").
		OrderBy("from_course_id", "to_course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch edges query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch edges: %w", err)
	}
	defer rows.Close()

	var edges []*models.PrerequisiteEdge
	for rows.Next() {
		var edge models.PrerequisiteEdge
		if err := rows.Scan(&edge.FromID, &edge.ToID, &edge.Type, &edge.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, &edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	return edges, nil
}

// GetMetadata returns the graph metadata row, creating it at version 1 on
// first use.
func (r *GraphRepository) GetMetadata(ctx context.Context) (*models.GraphMetadata, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO graph_metadata (id, version, source)
		VALUES (1, 1, 'initial')
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure graph metadata row: %w", err)
	}

	var meta models.GraphMetadata
	err = r.db.QueryRow(ctx, `
		SELECT version, node_count, edge_count, last_updated, source
		FROM graph_metadata WHERE id = 1
	`).Scan(&meta.Version, &meta.NodeCount, &meta.EdgeCount, &meta.LastUpdated, &meta.Source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to get graph metadata: %w", err)
	}

	return &meta, nil
}

// IncrementVersion atomically bumps the graph version, refreshing the
// node/edge counts and the source label in the same statement.
func (r *GraphRepository) IncrementVersion(ctx context.Context, source string) (int64, error) {
	if _, err := r.GetMetadata(ctx); err != nil {
		return 0, err
	}

	var version int64
	err := r.db.QueryRow(ctx, `
		UPDATE graph_metadata
		SET version = version + 1,
		    last_updated = now(),
		    source = $1,
		    node_count = (SELECT count(*) FROM courses),
		    edge_count = (SELECT count(*) FROM prerequisite_edges)
		WHERE id = 1
		RETURNING version
	`, source).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to increment graph version: %w", err)
	}

	logger.Info().Int64("version", version).Str("source", source).Msg("Incremented graph version")
	return version, nil
}

// UpsertCourse inserts or replaces a course row. Ingestion-side only:
// catalog changes supersede rows, they never mutate a served snapshot.
func (r *GraphRepository) UpsertCourse(ctx context.Context, course *models.Course) error {
	astJSON, err := marshalAST(course.PrereqAST)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(
			course.ID, course.Subject, course.CatalogNbr, course.Term,
			course.Title, course.Description,
			course.UnitsMin, course.UnitsMax, course.CrossListings,
			course.PrereqText, astJSON, course.PrereqConfidence,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			units_min = EXCLUDED.units_min,
			units_max = EXCLUDED.units_max,
			cross_listings = EXCLUDED.cross_listings,
			prereq_text = EXCLUDED.prereq_text,
			prereq_ast = EXCLUDED.prereq_ast,
			prereq_confidence = EXCLUDED.prereq_confidence`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert course %s: %w", course.ID, err)
	}
	return nil
}

// ReplaceEdges swaps the stored edge set for a freshly classified one,
// deduplicating on the way in.
func (r *GraphRepository) ReplaceEdges(ctx context.Context, edges []*models.PrerequisiteEdge) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin edge replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM prerequisite_edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}

	for _, edge := range edges {
		_, err := tx.Exec(ctx, `
			INSERT INTO prerequisite_edges (from_course_id, to_course_id, type, confidence)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING
		`, edge.FromID, edge.ToID, edge.Type, edge.Confidence)
		if err != nil {
			return fmt.Errorf("failed to insert edge %s -> %s: %w", edge.FromID, edge.ToID, err)
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		course  models.Course
		astJSON []byte
	)
	err := row.Scan(
		&course.ID, &course.Subject, &course.CatalogNbr, &course.Term,
		&course.Title, &course.Description,
		&course.UnitsMin, &course.UnitsMax, &course.CrossListings,
		&course.PrereqText, &astJSON, &course.PrereqConfidence,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	if len(astJSON) > 0 {
		var ast models.PrereqAST
		if err := json.Unmarshal(astJSON, &ast); err != nil {
			// A malformed AST blob degrades to "no structured
			// prerequisite" rather than failing the snapshot.
			logger.Warn().Str("course", course.ID).Err(err).Msg("Discarding malformed prerequisite AST")
		} else {
			course.PrereqAST = &ast
		}
	}

	return &course, nil
}

func marshalAST(ast *models.PrereqAST) ([]byte, error) {
	if ast == nil {
		return nil, nil
	}
	data, err := json.Marshal(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prerequisite AST: %w", err)
	}
	return data, nil
}
