package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// ReferenceRemediator clears every dependent reference to an account.
type ReferenceRemediator struct {
	store     ports.DependentStore
	relations []domain.DependentRelation
	metrics   ports.AccountMetrics
	log       zerolog.Logger
}

func NewReferenceRemediator(store ports.DependentStore, relations []domain.DependentRelation, metrics ports.AccountMetrics, log zerolog.Logger) *ReferenceRemediator {
	return &ReferenceRemediator{store: store, relations: relations, metrics: metrics, log: log}
}

// Remediate unsets optional pointers and deletes hard-owned records for userID,
// walking every relation in order. Each step is idempotent, so a relation with
// no matches is not an error. The first collaborator failure stops the walk and
// is returned as a *domain.RemediationError.
func (r *ReferenceRemediator) Remediate(ctx context.Context, userID string) error {
	for _, rel := range r.relations {
		var (
			n      int64
			err    error
			action string
		)
		switch rel.Ownership {
		case domain.OptionalOwnership:
			action = "unset"
			n, err = r.store.Unset(ctx, rel.Collection, rel.KeyField, userID)
		case domain.HardOwnership:
			action = "delete"
			n, err = r.store.DeleteAll(ctx, rel.Collection, rel.KeyField, userID)
		default:
			return &domain.RemediationError{Collection: rel.Collection, Err: fmt.Errorf("unknown ownership %d", rel.Ownership)}
		}
		if err != nil {
			r.log.Error().Err(err).
				Str("collection", rel.Collection).
				Str("action", action).
				Str("user_id", userID).
				Msg("reference remediation failed")
			return &domain.RemediationError{Collection: rel.Collection, Err: err}
		}
		if n > 0 {
			r.metrics.ReferencesRemediated(rel.Collection, action, n)
			r.log.Debug().
				Str("collection", rel.Collection).
				Str("action", action).
				Int64("records", n).
				Str("user_id", userID).
				Msg("references remediated")
		}
	}
	return nil
}
