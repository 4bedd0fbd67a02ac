package models

import "fmt"

// Course represents one catalog entry for a single term. A course is
// immutable once it has been ingested for a graph version; catalog changes
// produce a new row (and a version bump), never an in-place edit.
type Course struct {
	ID          string  `json:"id" db:"id"` // "SUBJECT CATALOG TERM", globally unique
	Subject     string  `json:"subject" db:"subject"`
	CatalogNbr  string  `json:"catalogNbr" db:"catalog_nbr"`
	Term        string  `json:"term" db:"term"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	UnitsMin    float64 `json:"unitsMin" db:"units_min"`
	UnitsMax    float64 `json:"unitsMax" db:"units_max"`

	// Cross-listed alias codes, e.g. "ENGRD 2110" for "CS 2110".
	CrossListings []string `json:"crossListings,omitempty" db:"cross_listings"`

	// Raw prerequisite text from the catalog feed and its parsed form.
	// Both parse fields are nil when the text was vague or absent.
	PrereqText       *string    `json:"prereqText,omitempty" db:"prereq_text"`
	PrereqAST        *PrereqAST `json:"prereqAst,omitempty" db:"prereq_ast"`
	PrereqConfidence *float64   `json:"prereqConfidence,omitempty" db:"prereq_confidence"`
}

// CourseID builds the canonical course identifier.
func CourseID(subject, catalogNbr, term string) string {
	return fmt.Sprintf("%s %s %s", subject, catalogNbr, term)
}

// Code returns the term-independent course code, e.g. "CS 2110".
func (c *Course) Code() string {
	return c.Subject + " " + c.CatalogNbr
}

// DefaultCreditWeight is assumed when a course carries no unit information.
const DefaultCreditWeight = 3.0

// CreditWeight returns the credit load used for semester packing.
func (c *Course) CreditWeight() float64 {
	if c.UnitsMax > 0 {
		return c.UnitsMax
	}
	if c.UnitsMin > 0 {
		return c.UnitsMin
	}
	return DefaultCreditWeight
}
