package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"templatehub/api-gateway/utils"
)

// AccessRequestPayload is the email-gate form body.
type AccessRequestPayload struct {
	Email string `json:"email" validate:"required,contains=@"`
}

// RequestTemplateAccess godoc
// @Summary Request access to a template
// @Description Records an access request and notifies the automation webhook.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body AccessRequestPayload true "Requesting email"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /templates/{id}/requests [post]
func (h *ApplicationHandler) RequestTemplateAccess(c *fiber.Ctx) error {
	templateID := c.Params("id")
	if templateID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Template ID is required")
	}

	payload := new(AccessRequestPayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing access request payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	email := utils.SanitizeInput(payload.Email)

	request, err := h.Requests.RequestAccess(c.UserContext(), email, templateID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not record access request")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, request)
}

// ListTemplateRequests returns the access-request audit log for one
// template. Admin only.
func (h *ApplicationHandler) ListTemplateRequests(c *fiber.Ctx) error {
	templateID := c.Params("id")

	requests, err := h.Requests.ListByTemplate(templateID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve requests for template %s", templateID))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, requests)
}
