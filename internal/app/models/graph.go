package models

import "time"

// PrerequisiteEdge is a directed edge from a prerequisite course to the
// course that depends on it. Confidence is carried over from the dependent
// course's parse; edges whose confidence fell below the configured
// threshold always have Type UNSURE, whatever the parser inferred.
type PrerequisiteEdge struct {
	FromID     string           `json:"fromCourseId" db:"from_course_id"`
	ToID       string           `json:"toCourseId" db:"to_course_id"`
	Type       RelationshipType `json:"type" db:"type"`
	Confidence float64          `json:"confidence" db:"confidence"`
}

// GraphMetadata describes one immutable snapshot of the course graph.
// Version is strictly increasing and only ever bumped by an explicit
// rebuild event; every cache key derived from the graph embeds it, so a
// bump invalidates all derived caches without enumerating them.
type GraphMetadata struct {
	Version     int64     `json:"version" db:"version"`
	NodeCount   int       `json:"nodeCount" db:"node_count"`
	EdgeCount   int       `json:"edgeCount" db:"edge_count"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
	Source      string    `json:"source" db:"source"`
}
