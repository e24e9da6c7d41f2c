package ports

import (
	"context"

	"github.com/campusops/user-service/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts the account, assigning an ID when empty.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, changes domain.AccountChanges) error
	Delete(ctx context.Context, id string) error
}
