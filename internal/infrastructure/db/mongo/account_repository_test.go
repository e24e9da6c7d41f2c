package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/campusops/user-service/internal/core/domain"
)

func TestAccountRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewAccountRepository(mt.DB)
		now := time.Now().UTC().Truncate(time.Second)

		created, err := repo.Create(context.Background(), &domain.Account{
			Name:         "asha",
			PasswordHash: "hash",
			Role:         domain.RoleTeacher,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		require.NoError(mt, err)
		assert.Len(mt, created.ID, 36)
		assert.Equal(mt, "hash", created.PasswordHash)
		assert.Equal(mt, now, created.CreatedAt)
	})

	mt.Run("duplicate name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewAccountRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.Account{Name: "asha"})
		assert.ErrorIs(mt, err, domain.ErrAccountExists)
	})
}

func TestAccountRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "name", Value: "asha"},
			{Key: "full_name", Value: "Asha Nair"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "center"},
			{Key: "status", Value: true},
			{Key: "created_at", Value: int64(1700000000)},
		}))
		repo := NewAccountRepository(mt.DB)

		got, err := repo.FindByID(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", got.ID)
		assert.Equal(mt, domain.RoleCenter, got.Role)
		assert.True(mt, got.Status)
		assert.Equal(mt, time.Unix(1700000000, 0).UTC(), got.CreatedAt)
		assert.True(mt, got.UpdatedAt.IsZero())
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))
		repo := NewAccountRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "ghost")
		assert.ErrorIs(mt, err, domain.ErrAccountNotFound)
	})
}

func TestAccountRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	name := "renamed"

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewAccountRepository(mt.DB)

		err := repo.Update(context.Background(), "u1", domain.AccountChanges{Name: &name, UpdatedAt: time.Now()})
		assert.NoError(mt, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewAccountRepository(mt.DB)

		err := repo.Update(context.Background(), "ghost", domain.AccountChanges{Name: &name})
		assert.ErrorIs(mt, err, domain.ErrAccountNotFound)
	})

	mt.Run("empty change set", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)

		assert.NoError(mt, repo.Update(context.Background(), "u1", domain.AccountChanges{}))
	})
}

func TestAccountRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewAccountRepository(mt.DB)

		assert.NoError(mt, repo.Delete(context.Background(), "u1"))
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewAccountRepository(mt.DB)

		assert.ErrorIs(mt, repo.Delete(context.Background(), "ghost"), domain.ErrAccountNotFound)
	})
}
