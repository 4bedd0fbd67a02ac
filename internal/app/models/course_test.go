package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseID(t *testing.T) {
	assert.Equal(t, "CS 2110 FA25", CourseID("CS", "2110", "FA25"))
}

func TestCourse_Code(t *testing.T) {
	c := &Course{Subject: "CS", CatalogNbr: "2110", Term: "FA25"}
	assert.Equal(t, "CS 2110", c.Code())
}

func TestCourse_CreditWeight(t *testing.T) {
	tests := []struct {
		name     string
		unitsMin float64
		unitsMax float64
		want     float64
	}{
		{"max wins", 3, 4, 4},
		{"min fallback", 3, 0, 3},
		{"default when unknown", 0, 0, DefaultCreditWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{UnitsMin: tt.unitsMin, UnitsMax: tt.unitsMax}
			assert.Equal(t, tt.want, c.CreditWeight())
		})
	}
}

func TestRelationshipType_PermissionSuffix(t *testing.T) {
	withPerm := RelPrerequisiteOr.WithPermission()

	assert.Equal(t, RelationshipType("PREREQUISITE_OR_OR_PERMISSION"), withPerm)
	assert.True(t, withPerm.HasPermission())
	assert.Equal(t, RelPrerequisiteOr, withPerm.Base())
	assert.False(t, RelPrerequisiteOr.HasPermission())
}

func TestRelationshipType_IsHardPrerequisite(t *testing.T) {
	hard := []RelationshipType{
		RelMandatory,
		RelPrerequisite,
		RelPrerequisiteAnd,
		RelPrerequisiteOr,
		RelPrerequisite.WithPermission(),
	}
	for _, rt := range hard {
		assert.True(t, rt.IsHardPrerequisite(), "%s should be hard", rt)
	}

	soft := []RelationshipType{
		RelCorequisite,
		RelRecommended,
		RelRecommendedAnd,
		RelRecommendedOr,
		RelAndGroup,
		RelOrGroup,
		RelUnsure,
	}
	for _, rt := range soft {
		assert.False(t, rt.IsHardPrerequisite(), "%s should not be hard", rt)
	}
}

func TestRelationshipType_IsCorequisite(t *testing.T) {
	assert.True(t, RelCorequisite.IsCorequisite())
	assert.True(t, RelCorequisite.WithPermission().IsCorequisite())
	assert.False(t, RelPrerequisite.IsCorequisite())
}
