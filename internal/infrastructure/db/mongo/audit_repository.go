package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

const auditCollection = "account_audit"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRecorder {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

// Record persists a lifecycle event to the account_audit collection.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"account_id":  event.AccountID,
		"action":      string(event.Action),
		"actor_id":    event.ActorID,
		"actor_role":  string(event.ActorRole),
		"target_role": string(event.TargetRole),
		"at":          event.At.UTC(),
	}
	if len(event.Fields) > 0 {
		doc["fields"] = event.Fields
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
