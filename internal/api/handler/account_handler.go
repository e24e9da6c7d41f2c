package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// AccountHandler handles HTTP requests for account lifecycle operations.
// Domain errors are returned as-is and rendered by the central error handler.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create handles POST /user/create.
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/create [post]
func (h *AccountHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), actor, ports.CreateAccountInput{
		Name:     req.Name,
		FullName: req.FullName,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, accountEnvelope{
		Message: "User created successfully",
		Data:    toAccountResponse(created),
	})
}

// Edit handles PUT /user/edit/:id.
//
// @Summary      Edit a user account
// @Description  Partial update of name, full_name and password. The caller must manage the account's current role.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Account ID"
// @Param        body  body      editAccountRequest  true  "Fields to change"
// @Success      200   {object}  accountEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/edit/{id} [put]
func (h *AccountHandler) Edit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req editAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Edit(c.Request().Context(), actor, c.Param("id"), ports.EditAccountInput{
		Name:     req.Name,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountEnvelope{
		Message: "User updated successfully",
		Data:    toAccountResponse(updated),
	})
}

// Delete handles DELETE /user/delete/:id.
//
// @Summary      Delete an unreferenced user account
// @Description  Admin only. Fails with 400 and the list of references when other records still point at the account.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /user/delete/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Message: "User deleted successfully"})
}

// ForceDelete handles DELETE /user/force-delete/:id.
//
// @Summary      Delete a user account and every reference to it
// @Description  Admin only. Optional references are unlinked, owned records are deleted, then the account is removed.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /user/force-delete/{id} [delete]
func (h *AccountHandler) ForceDelete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.ForceDelete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{
		Message:           "User and all references deleted successfully",
		RemovedReferences: true,
	})
}
