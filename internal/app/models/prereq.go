package models

import "strings"

// RelationshipType classifies a prerequisite relationship between two
// courses. The closed set below comes from the catalog parser; any of the
// base types may additionally carry the OrPermissionSuffix when the source
// text contains a permission-to-override clause.
type RelationshipType string

const (
	RelMandatory       RelationshipType = "MANDATORY"
	RelPrerequisite    RelationshipType = "PREREQUISITE"
	RelPrerequisiteAnd RelationshipType = "PREREQUISITE_AND"
	RelPrerequisiteOr  RelationshipType = "PREREQUISITE_OR"
	RelCorequisite     RelationshipType = "COREQUISITE"
	RelRecommended     RelationshipType = "RECOMMENDED"
	RelRecommendedAnd  RelationshipType = "RECOMMENDED_AND"
	RelRecommendedOr   RelationshipType = "RECOMMENDED_OR"
	RelAndGroup        RelationshipType = "AND_GROUP"
	RelOrGroup         RelationshipType = "OR_GROUP"
	RelUnsure          RelationshipType = "UNSURE"
)

// OrPermissionSuffix marks a relationship the source text allows to be
// bypassed with instructor permission.
const OrPermissionSuffix = "_OR_PERMISSION"

// WithPermission returns the _OR_PERMISSION variant of t.
func (t RelationshipType) WithPermission() RelationshipType {
	return t + RelationshipType(OrPermissionSuffix)
}

// Base strips the _OR_PERMISSION suffix, if present.
func (t RelationshipType) Base() RelationshipType {
	return RelationshipType(strings.TrimSuffix(string(t), OrPermissionSuffix))
}

// HasPermission reports whether t carries the permission suffix.
func (t RelationshipType) HasPermission() bool {
	return strings.HasSuffix(string(t), OrPermissionSuffix)
}

// IsHardPrerequisite reports whether t orders courses across semesters.
// Recommended relationships, loose groups and UNSURE edges never constrain
// a plan; corequisites constrain placement but allow the same semester.
func (t RelationshipType) IsHardPrerequisite() bool {
	switch t.Base() {
	case RelMandatory, RelPrerequisite, RelPrerequisiteAnd, RelPrerequisiteOr:
		return true
	}
	return false
}

// IsCorequisite reports whether t permits same-semester placement.
func (t RelationshipType) IsCorequisite() bool {
	return t.Base() == RelCorequisite
}

// PrereqAST is the structured form of one course's prerequisite text:
// the inferred relationship type, the referenced course codes in
// first-seen order, and flags describing clauses that soften the logic.
type PrereqAST struct {
	Type    RelationshipType `json:"type"`
	Courses []string         `json:"courses"`
	RawText string           `json:"rawText"`

	HasPermission bool `json:"hasPermissionClause"`
	HasEquivalent bool `json:"hasEquivalentClause"`
	IsRecommended bool `json:"isRecommended"`
}
