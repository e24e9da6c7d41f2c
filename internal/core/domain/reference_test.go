package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependentRelation_Describe(t *testing.T) {
	center := DependentRelation{Collection: "centers", KeyField: "center_admin", Label: "Center Admin", NameField: "center_name"}
	manager := DependentRelation{Collection: "manager", KeyField: "user_id", Label: "Manager"}

	assert.Equal(t, "Center Admin (North Campus)", center.Describe(Document{"center_name": "North Campus"}))
	assert.Equal(t, "Center Admin", center.Describe(Document{}))
	assert.Equal(t, "Center Admin", center.Describe(Document{"center_name": nil}))
	assert.Equal(t, "Manager", manager.Describe(Document{"user_id": "u1"}))
}

func TestDependentRelations_WellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, rel := range DependentRelations {
		assert.NotEmpty(t, rel.Collection)
		assert.NotEmpty(t, rel.KeyField)
		assert.NotEmpty(t, rel.Label)
		assert.Contains(t, []Ownership{OptionalOwnership, HardOwnership}, rel.Ownership)
		assert.False(t, seen[rel.Collection], "duplicate collection %s", rel.Collection)
		seen[rel.Collection] = true
	}
}

func TestReferenceConflictError(t *testing.T) {
	err := error(&ReferenceConflictError{References: []string{"Manager", "Teacher"}})

	assert.True(t, errors.Is(err, ErrReferentialConflict))
	assert.Equal(t, "Cannot delete user. User is referenced in: Manager, Teacher. Please remove these references first.", err.Error())
}

func TestRemediationError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("force delete: %w", &RemediationError{Collection: "teachers", Err: cause})

	assert.True(t, errors.Is(err, ErrRemediationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "teachers: connection reset")
}
