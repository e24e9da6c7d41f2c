package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("user not found")
	ErrAccountExists       = errors.New("user already exists")
	ErrForbidden           = errors.New("access forbidden")
	ErrSelfDeletion        = errors.New("you cannot delete your own account")
	ErrDeletionInProgress  = errors.New("user deletion already in progress")
	ErrReferentialConflict = errors.New("user is still referenced")
	ErrRemediationFailed   = errors.New("failed to remove user references")
	ErrScanIncomplete      = errors.New("reference scan incomplete")
)

// Account is a user account managed by this service.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       bool      `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountChanges holds the fields an edit actually touches. Nil fields are left as-is.
type AccountChanges struct {
	Name         *string
	FullName     *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// Empty reports whether the change set carries no field updates.
func (c AccountChanges) Empty() bool {
	return c.Name == nil && c.FullName == nil && c.PasswordHash == nil
}

// Apply copies the changes onto a.
func (c AccountChanges) Apply(a *Account) {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.FullName != nil {
		a.FullName = *c.FullName
	}
	if c.PasswordHash != nil {
		a.PasswordHash = *c.PasswordHash
	}
	if !c.UpdatedAt.IsZero() {
		a.UpdatedAt = c.UpdatedAt
	}
}

// Actor is the authenticated caller, as asserted by the upstream token.
type Actor struct {
	ID   string
	Role Role
}
