package ports

import (
	"context"

	"github.com/campusops/user-service/internal/core/domain"
)

// CreateAccountInput carries the fields of a new account.
type CreateAccountInput struct {
	Name     string
	FullName string
	Password string
	Role     domain.Role
}

// EditAccountInput carries a partial update. Empty fields are left untouched.
type EditAccountInput struct {
	Name     string
	FullName string
	Password string
}

// AccountService defines the account lifecycle use cases.
type AccountService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateAccountInput) (*domain.Account, error)
	Edit(ctx context.Context, actor domain.Actor, id string, in EditAccountInput) (*domain.Account, error)
	// Delete removes the account only when nothing references it.
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// ForceDelete clears every reference to the account, then removes it.
	ForceDelete(ctx context.Context, actor domain.Actor, id string) error
}
