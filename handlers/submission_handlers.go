package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"templatehub/api-gateway/models"
	"templatehub/api-gateway/utils"
)

// SubmissionPayload is the public "submit your template" form body.
type SubmissionPayload struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email" validate:"required,email"`
	TemplateName        string `json:"templateName" validate:"required"`
	Category            string `json:"category"`
	Description         string `json:"description"`
	BuilderDescription  string `json:"builderDescription"`
	BaseURL             string `json:"baseUrl" validate:"omitempty,url"`
	WalkthroughVideoURL string `json:"walkthroughVideoUrl" validate:"omitempty,url"`
}

// SubmitTemplate godoc
// @Summary Submit a template
// @Description Converts a visitor-submitted form into a pending catalog entry.
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body SubmissionPayload true "Template submission"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /submissions [post]
func (h *ApplicationHandler) SubmitTemplate(c *fiber.Ctx) error {
	payload := new(SubmissionPayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing submission payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse submission JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	submission := models.TemplateSubmission{
		FirstName:           utils.SanitizeInput(payload.FirstName),
		LastName:            utils.SanitizeInput(payload.LastName),
		Email:               utils.SanitizeInput(payload.Email),
		TemplateName:        utils.SanitizeInput(payload.TemplateName),
		Category:            payload.Category,
		Description:         payload.Description,
		BuilderDescription:  payload.BuilderDescription,
		BaseURL:             payload.BaseURL,
		WalkthroughVideoURL: payload.WalkthroughVideoURL,
		SubmittedAt:         time.Now().UTC(),
	}

	created, err := h.Submissions.CreateFromSubmission(submission)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not submit template")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, created)
}
