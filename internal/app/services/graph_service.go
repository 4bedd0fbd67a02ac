package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/gradpath/internal/app/graph"
	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/pkg/apperrors"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// GraphStore is the read boundary to the external graph data source. The
// core only consumes snapshots and version bumps; it never writes course
// or edge data through this interface.
type GraphStore interface {
	FetchCourses(ctx context.Context) ([]*models.Course, error)
	FetchEdges(ctx context.Context) ([]*models.PrerequisiteEdge, error)
	GetMetadata(ctx context.Context) (*models.GraphMetadata, error)
	IncrementVersion(ctx context.Context, source string) (int64, error)
}

// GraphService serves immutable graph snapshots with a short TTL cache and
// owns the version counter contract: consumers derive every cache key from
// the current version, so a bump invalidates all derived caches without
// enumerating them.
type GraphService struct {
	store   GraphStore
	builder *graph.Builder
	ttl     time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	meta    *models.GraphMetadata
	metaAt  time.Time
	model   *graph.Model
	modelAt time.Time
}

// NewGraphService creates a GraphService. ttl bounds how long metadata and
// built snapshots are served from memory; a cache check is an elapsed-time
// comparison, not a lock on the store.
func NewGraphService(store GraphStore, builder *graph.Builder, ttl time.Duration) *GraphService {
	return &GraphService{
		store:   store,
		builder: builder,
		ttl:     ttl,
		log:     logger.Get(),
	}
}

// CurrentMetadata returns the current graph version and counts, cached
// for the configured TTL. Store failure is the one condition this core
// cannot mask and surfaces as ErrGraphUnavailable.
func (s *GraphService) CurrentMetadata(ctx context.Context) (*models.GraphMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.meta != nil && time.Since(s.metaAt) < s.ttl {
		return s.meta, nil
	}

	meta, err := s.store.GetMetadata(ctx)
	if err != nil {
		return nil, apperrors.NewGraphUnavailableError(err)
	}

	s.meta = meta
	s.metaAt = time.Now()

	s.log.Info().
		Int64("version", meta.Version).
		Int("nodes", meta.NodeCount).
		Int("edges", meta.EdgeCount).
		Msg("Refreshed graph metadata")

	return meta, nil
}

// BumpVersion atomically increments the graph version after a data change
// and drops the TTL-held caches, so the next read observes the new
// snapshot. Returns the new version.
func (s *GraphService) BumpVersion(ctx context.Context, source string) (int64, error) {
	version, err := s.store.IncrementVersion(ctx, source)
	if err != nil {
		return 0, apperrors.NewGraphUnavailableError(err)
	}

	s.mu.Lock()
	s.meta = nil
	s.model = nil
	s.mu.Unlock()

	s.log.Info().Int64("version", version).Str("source", source).Msg("Bumped graph version")
	return version, nil
}

// Snapshot returns the current built graph model, rebuilding at most once
// per TTL window. The returned model is immutable; in-flight planning
// requests keep a consistent view across version bumps.
func (s *GraphService) Snapshot(ctx context.Context) (*graph.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil && time.Since(s.modelAt) < s.ttl {
		return s.model, nil
	}

	meta, err := s.store.GetMetadata(ctx)
	if err != nil {
		return nil, apperrors.NewGraphUnavailableError(err)
	}
	courses, err := s.store.FetchCourses(ctx)
	if err != nil {
		return nil, apperrors.NewGraphUnavailableError(err)
	}

	model := s.builder.Build(courses, meta)

	s.model = model
	s.modelAt = time.Now()
	s.meta = model.Meta
	s.metaAt = s.modelAt

	return model, nil
}

// CacheKey builds a versioned cache key for external caching layers:
// {base}:v{version}:{params}. Params are rendered sorted so the key is
// stable; floats keep three decimals with the dot stripped. A version
// bump therefore namespaces away every previously derived entry.
func CacheKey(base string, version int64, params map[string]any) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s:v%d:default", base, version)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := params[k].(type) {
		case float64:
			parts = append(parts, k+"_"+strings.ReplaceAll(fmt.Sprintf("%.3f", v), ".", ""))
		case float32:
			parts = append(parts, k+"_"+strings.ReplaceAll(fmt.Sprintf("%.3f", v), ".", ""))
		default:
			parts = append(parts, fmt.Sprintf("%s_%v", k, v))
		}
	}

	return fmt.Sprintf("%s:v%d:%s", base, version, strings.Join(parts, "_"))
}
