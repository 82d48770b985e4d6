package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalaid/practice-api/internal/core/ports"
)

// SettingsHandler lets any authenticated account change its own credentials.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// ChangePassword handles POST /api/settings/change-password.
//
// @Summary      Change own password
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/settings/change-password [post]
func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	if err := h.settings.ChangePassword(c.Request().Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully."})
}

// ChangeEmail handles POST /api/settings/change-email.
//
// @Summary      Change own email
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeEmailRequest  true  "New email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/settings/change-email [post]
func (h *SettingsHandler) ChangeEmail(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req changeEmailRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	if err := h.settings.ChangeEmail(c.Request().Context(), principal.ID, req.NewEmail); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email updated successfully."})
}
