// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CredentialHandler holds dependencies for credential-related handlers.
type CredentialHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler, injected by Fx.
func NewCredentialHandler(uc usecase.CredentialUsecase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		uc:     uc,
		logger: logger,
	}
}

// SignUp handles the account creation request.
func (h *CredentialHandler) SignUp(c echo.Context) error {
	var input *usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-up input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignUp(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account created successfully")
}

// SignIn handles the login request.
func (h *CredentialHandler) SignIn(c echo.Context) error {
	var input *usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignIn(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetProfile returns the claims attached by the access guard: the snapshot of
// the account as of token issuance, not a fresh read.
func (h *CredentialHandler) GetProfile(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextKeyClaims).(*service.Claims)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authorization required")
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"sub":    claims.Subject,
		"name":   claims.Name,
		"email":  claims.Email,
		"imgUrl": claims.ImageURL,
	}, "Profile retrieved successfully")
}

// ChangePassword handles the step-up password change request.
func (h *CredentialHandler) ChangePassword(c echo.Context) error {
	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// UpdateProfile handles the partial profile update request and returns a
// fresh token reflecting the updated account.
func (h *CredentialHandler) UpdateProfile(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account id")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile updated successfully")
}

// ListAccounts returns all registered accounts without credential material.
func (h *CredentialHandler) ListAccounts(c echo.Context) error {
	outputs, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "Accounts retrieved successfully")
}

// DeleteAccount removes an account by id.
func (h *CredentialHandler) DeleteAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account id")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}
