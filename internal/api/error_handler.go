package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error      string   `json:"error"`
	References []string `json:"references,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var conflict *domain.ReferenceConflictError
	if errors.As(err, &conflict) {
		return http.StatusBadRequest, errorResponse{Error: conflict.Error(), References: conflict.References}
	}

	var remediation *domain.RemediationError
	if errors.As(err, &remediation) {
		log.Error().
			Err(remediation.Err).
			Str("collection", remediation.Collection).
			Str("path", c.Path()).
			Msg("reference remediation failed")
		return http.StatusInternalServerError, errorResponse{
			Error: "failed to remove user references: " + remediation.Err.Error(),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrSelfDeletion):
		return http.StatusForbidden, errorResponse{Error: "you cannot delete your own account"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	case errors.Is(err, domain.ErrDeletionInProgress):
		return http.StatusConflict, errorResponse{Error: "a deletion for this user is already in progress"}
	case errors.Is(err, domain.ErrScanIncomplete):
		log.Warn().Err(err).Str("path", c.Path()).Msg("reference scan incomplete")
		return http.StatusServiceUnavailable, errorResponse{Error: "could not verify user references, try again later"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
