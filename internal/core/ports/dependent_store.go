package ports

import (
	"context"

	"github.com/campusops/user-service/internal/core/domain"
)

// DependentStore is the collection-level view over entities that point at accounts.
// Every call filters on equality of field with value.
type DependentStore interface {
	// FindFirst returns at most one matching record; ok is false when none match.
	FindFirst(ctx context.Context, collection, field, value string) (doc domain.Document, ok bool, err error)
	// Unset clears field on every matching record and returns how many were modified.
	Unset(ctx context.Context, collection, field, value string) (int64, error)
	// DeleteAll removes every matching record and returns how many were removed.
	DeleteAll(ctx context.Context, collection, field, value string) (int64, error)
}
