package ports

import (
	"context"

	"github.com/campusops/user-service/internal/core/domain"
)

// AuditRecorder persists lifecycle events to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditPublisher hands audit events off for asynchronous recording.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}
