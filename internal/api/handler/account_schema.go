package handler

import (
	"time"

	"github.com/campusops/user-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error      string   `json:"error"`
	References []string `json:"references,omitempty"`
}

// --- Request / Response types ---

type createAccountRequest struct {
	Name     string `json:"name"      validate:"required,min=3,max=64"`
	FullName string `json:"full_name" validate:"omitempty,max=128"`
	Password string `json:"password"  validate:"required,min=6,max=72"`
	Role     string `json:"role"      validate:"required,role"`
}

// editAccountRequest is a partial update; omitted or empty fields are left untouched.
type editAccountRequest struct {
	Name     string `json:"name"      validate:"omitempty,min=3,max=64"`
	FullName string `json:"full_name" validate:"omitempty,max=128"`
	Password string `json:"password"  validate:"omitempty,min=6,max=72"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type accountEnvelope struct {
	Message string          `json:"message"`
	Data    accountResponse `json:"data"`
}

type deleteResponse struct {
	Message           string `json:"message"`
	RemovedReferences bool   `json:"removed_references,omitempty"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		FullName:  a.FullName,
		Role:      string(a.Role),
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
