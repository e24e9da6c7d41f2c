package domain

import "time"

// AuditAction names a lifecycle operation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditUpdated      AuditAction = "updated"
	AuditDeleted      AuditAction = "deleted"
	AuditForceDeleted AuditAction = "force_deleted"
)

// AuditEvent records a completed lifecycle operation.
type AuditEvent struct {
	AccountID  string
	Action     AuditAction
	ActorID    string
	ActorRole  Role
	TargetRole Role
	Fields     []string // edited fields, for AuditUpdated
	At         time.Time
}
