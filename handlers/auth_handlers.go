package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"templatehub/api-gateway/services"
	"templatehub/api-gateway/utils"
)

// LoginPayload is the admin portal login form body.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary Admin login
// @Description Signs an allow-listed administrator in via the auth backend.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginPayload true "Admin credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *ApplicationHandler) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse login JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	session, err := h.Auth.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "You do not have permission to access the admin portal.")
		}
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid credentials. Please try again.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, session)
}

// Logout signs the current session out of the auth backend.
func (h *ApplicationHandler) Logout(c *fiber.Ctx) error {
	token := tokenFromHeader(c)
	if token == "" {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	if err := h.Auth.Logout(token); err != nil {
		h.Logger.Errorf("Error signing out: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not sign out")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Signed out",
	})
}

// Me returns the authenticated admin behind the presented token, or 401
// when the session is missing, invalid, or not allow-listed.
func (h *ApplicationHandler) Me(c *fiber.Ctx) error {
	token := tokenFromHeader(c)
	if token == "" {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := h.Auth.CurrentUser(token)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "No active admin session")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, user)
}

func tokenFromHeader(c *fiber.Ctx) string {
	const prefix = "Bearer "
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
