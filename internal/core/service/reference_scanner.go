package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// ReferenceScanner looks up every dependent collection for records pointing at an account.
type ReferenceScanner struct {
	store      ports.DependentStore
	relations  []domain.DependentRelation
	failClosed bool
	metrics    ports.AccountMetrics
	log        zerolog.Logger
}

// NewReferenceScanner returns a scanner over relations. With failClosed false a
// failed lookup is logged and counted as "no reference"; with failClosed true
// it aborts the scan with domain.ErrScanIncomplete.
func NewReferenceScanner(store ports.DependentStore, relations []domain.DependentRelation, failClosed bool, metrics ports.AccountMetrics, log zerolog.Logger) *ReferenceScanner {
	return &ReferenceScanner{store: store, relations: relations, failClosed: failClosed, metrics: metrics, log: log}
}

// FindReferences returns one descriptor per relation that still points at userID,
// in relation order. An empty result means the account may be deleted.
func (s *ReferenceScanner) FindReferences(ctx context.Context, userID string) ([]string, error) {
	refs := make([]string, 0)
	for _, rel := range s.relations {
		doc, ok, err := s.store.FindFirst(ctx, rel.Collection, rel.KeyField, userID)
		if err != nil {
			s.metrics.ReferenceScanFailed(rel.Collection)
			if s.failClosed {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrScanIncomplete, rel.Collection, err)
			}
			s.log.Warn().Err(err).
				Str("collection", rel.Collection).
				Str("field", rel.KeyField).
				Str("user_id", userID).
				Msg("reference check failed, treating as unreferenced")
			continue
		}
		if ok {
			refs = append(refs, rel.Describe(doc))
		}
	}
	return refs, nil
}
