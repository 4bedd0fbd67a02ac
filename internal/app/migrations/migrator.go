package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// Migrator manages the graph store schema.
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{db: db}
}

type migration struct {
	version string
	sql     string
}

// Migrations run in order; each is applied once and recorded in
// schema_migrations.
var schemaMigrations = []migration{
	{
		version: "001",
		sql: `
		CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			catalog_nbr TEXT NOT NULL,
			term TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT,
			units_min DOUBLE PRECISION NOT NULL DEFAULT 0,
			units_max DOUBLE PRECISION NOT NULL DEFAULT 0,
			cross_listings TEXT[] NOT NULL DEFAULT '{}',
			prereq_text TEXT,
			prereq_ast JSONB,
			prereq_confidence DOUBLE PRECISION,
			UNIQUE (subject, catalog_nbr, term)
		);
		CREATE INDEX IF NOT EXISTS idx_courses_code ON courses (subject, catalog_nbr);`,
	},
	{
		version: "002",
		sql: `
		CREATE TABLE IF NOT EXISTS prerequisite_edges (
			id BIGSERIAL PRIMARY KEY,
			from_course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			to_course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (from_course_id, to_course_id, type, confidence)
		);
		CREATE INDEX IF NOT EXISTS idx_edges_to ON prerequisite_edges (to_course_id);`,
	},
	{
		version: "003",
		sql: `
		CREATE TABLE IF NOT EXISTS graph_metadata (
			id INT PRIMARY KEY CHECK (id = 1),
			version BIGINT NOT NULL DEFAULT 1,
			node_count INT NOT NULL DEFAULT 0,
			edge_count INT NOT NULL DEFAULT 0,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
			source TEXT NOT NULL DEFAULT 'initial'
		);`,
	},
}

// Migrate applies all pending migrations.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTable(ctx); err != nil {
		return err
	}

	for _, mig := range schemaMigrations {
		applied, err := m.isApplied(ctx, mig.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if _, err := m.db.Exec(ctx, mig.sql); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.version, err)
		}
		if err := m.record(ctx, mig.version); err != nil {
			return err
		}
		logger.Info().Str("version", mig.version).Msg("Applied migration")
	}

	return nil
}

func (m *Migrator) ensureMigrationTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

func (m *Migrator) record(ctx context.Context, version string) error {
	if _, err := m.db.Exec(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}
