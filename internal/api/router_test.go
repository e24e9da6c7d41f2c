package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

const testSecret = "router-secret"

type stubAccounts struct {
	deleted []string
	forced  []string
}

func (s *stubAccounts) Create(_ context.Context, _ domain.Actor, in ports.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "new-id", Name: in.Name, Role: in.Role, Status: in.Role.ActiveByDefault()}, nil
}

func (s *stubAccounts) Edit(_ context.Context, _ domain.Actor, id string, _ ports.EditAccountInput) (*domain.Account, error) {
	if id == "ghost" {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{ID: id, Name: "asha", Role: domain.RoleTeacher}, nil
}

func (s *stubAccounts) Delete(_ context.Context, _ domain.Actor, id string) error {
	if id == "linked" {
		return &domain.ReferenceConflictError{References: []string{"Teacher"}}
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAccounts) ForceDelete(_ context.Context, _ domain.Actor, id string) error {
	s.forced = append(s.forced, id)
	return nil
}

func bearer(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id,
		"role": string(role),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

// The prometheus middleware registers collectors globally, so the router is
// built once and shared by every subtest.
func TestRouter(t *testing.T) {
	accounts := &stubAccounts{}
	e := NewRouter(nil, nil, accounts, testSecret, zerolog.Nop())

	do := func(method, path, auth, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	admin := bearer(t, "admin-1", domain.RoleAdmin)
	manager := bearer(t, "manager-1", domain.RoleManager)

	t.Run("liveness", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/health", "", "").Code)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rec := do(http.MethodGet, "/metrics", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := do(http.MethodPost, "/user/create", "", `{"name":"asha","password":"s3cret!","role":"teacher"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		rec := do(http.MethodPost, "/user/create", admin, `{"name":"asha","password":"s3cret!","role":"cardadmin"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":true`)
	})

	t.Run("create with unknown role", func(t *testing.T) {
		rec := do(http.MethodPost, "/user/create", admin, `{"name":"asha","password":"s3cret!","role":"overlord"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("edit missing account", func(t *testing.T) {
		rec := do(http.MethodPut, "/user/edit/ghost", admin, `{"full_name":"Nobody"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "user not found")
	})

	t.Run("delete requires admin", func(t *testing.T) {
		rec := do(http.MethodDelete, "/user/delete/u1", manager, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec = do(http.MethodDelete, "/user/force-delete/u1", manager, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, accounts.deleted)
		assert.Empty(t, accounts.forced)
	})

	t.Run("delete referenced account", func(t *testing.T) {
		rec := do(http.MethodDelete, "/user/delete/linked", admin, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"references":["Teacher"]`)
	})

	t.Run("delete and force delete", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/user/delete/u1", admin, "").Code)
		assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/user/force-delete/u2", admin, "").Code)
		assert.Equal(t, []string{"u1"}, accounts.deleted)
		assert.Equal(t, []string{"u2"}, accounts.forced)
	})
}
