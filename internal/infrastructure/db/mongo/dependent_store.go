package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// DependentStore implements ports.DependentStore over arbitrary collections
// of the same database.
type DependentStore struct {
	db *mongo.Database
}

var _ ports.DependentStore = (*DependentStore)(nil)

func NewDependentStore(db *mongo.Database) *DependentStore {
	return &DependentStore{db: db}
}

// FindFirst returns one record whose field equals value.
func (s *DependentStore) FindFirst(ctx context.Context, collection, field, value string) (domain.Document, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{field: value}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find %s.%s: %w", collection, field, err)
	}
	return domain.Document(doc), true, nil
}

// Unset sets field to null on every matching record.
func (s *DependentStore) Unset(ctx context.Context, collection, field, value string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).UpdateMany(ctx,
		bson.M{field: value},
		bson.M{"$set": bson.M{field: nil}},
	)
	if err != nil {
		return 0, fmt.Errorf("unset %s.%s: %w", collection, field, err)
	}
	return res.ModifiedCount, nil
}

// DeleteAll removes every matching record.
func (s *DependentStore) DeleteAll(ctx context.Context, collection, field, value string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.M{field: value})
	if err != nil {
		return 0, fmt.Errorf("delete %s.%s: %w", collection, field, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes indexes the foreign-key field of every relation so that
// scans stay point lookups.
func (s *DependentStore) EnsureIndexes(ctx context.Context, relations []domain.DependentRelation) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, rel := range relations {
		_, err := s.db.Collection(rel.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: rel.KeyField, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("index %s.%s: %w", rel.Collection, rel.KeyField, err)
		}
	}
	return nil
}
