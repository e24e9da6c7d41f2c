package domain

import (
	"fmt"
	"strings"
)

// Ownership is the flavour of a dependent reference to an account.
type Ownership int

const (
	// OptionalOwnership references survive account deletion once the pointer is cleared.
	OptionalOwnership Ownership = iota + 1
	// HardOwnership references are deleted together with the account.
	HardOwnership
)

func (o Ownership) String() string {
	switch o {
	case OptionalOwnership:
		return "optional"
	case HardOwnership:
		return "hard"
	default:
		return "unknown"
	}
}

// Document is a raw record read from a dependent collection.
type Document map[string]any

// DependentRelation describes one collection holding a foreign pointer to an account.
type DependentRelation struct {
	Collection string
	KeyField   string
	Label      string
	// NameField, when set, names the field whose value is shown next to Label.
	NameField string
	Ownership Ownership
}

// Describe returns the operator-facing descriptor for a matching record.
func (r DependentRelation) Describe(doc Document) string {
	if r.NameField == "" {
		return r.Label
	}
	name, ok := doc[r.NameField]
	if !ok || name == nil {
		return r.Label
	}
	return fmt.Sprintf("%s (%v)", r.Label, name)
}

// DependentRelations is the closed list of entity kinds that point at accounts.
// Scanner and remediator both consume it; add new kinds here only.
var DependentRelations = []DependentRelation{
	{Collection: "centers", KeyField: "center_admin", Label: "Center Admin", NameField: "center_name", Ownership: OptionalOwnership},
	{Collection: "states", KeyField: "state_admin", Label: "State Admin", NameField: "state_name", Ownership: OptionalOwnership},
	{Collection: "manager", KeyField: "user_id", Label: "Manager", Ownership: HardOwnership},
	{Collection: "academic_coordinator", KeyField: "user_id", Label: "Academic Coordinator", Ownership: HardOwnership},
	{Collection: "financial_partner", KeyField: "user_id", Label: "Financial Partner", Ownership: HardOwnership},
	{Collection: "teachers", KeyField: "teacher", Label: "Teacher", Ownership: HardOwnership},
	{Collection: "students", KeyField: "student_id", Label: "Student", Ownership: HardOwnership},
}

// ReferenceConflictError is returned when a guarded delete finds dependents.
type ReferenceConflictError struct {
	References []string
}

func (e *ReferenceConflictError) Error() string {
	return fmt.Sprintf("Cannot delete user. User is referenced in: %s. Please remove these references first.",
		strings.Join(e.References, ", "))
}

func (e *ReferenceConflictError) Unwrap() error { return ErrReferentialConflict }

// RemediationError reports the remediation step that failed.
type RemediationError struct {
	Collection string
	Err        error
}

func (e *RemediationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Collection, e.Err.Error())
}

func (e *RemediationError) Is(target error) bool { return target == ErrRemediationFailed }

func (e *RemediationError) Unwrap() error { return e.Err }
