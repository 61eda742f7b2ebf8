package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"templatehub/api-gateway/models"
	"templatehub/api-gateway/services"
	"templatehub/api-gateway/utils"
)

// maxListEntries bounds the feature and use-case lists on the admin edit
// form. The store itself does not enforce this; the check lives at the
// request boundary.
const maxListEntries = 3

// TemplatePayload is the request body for creating or updating a catalog
// entry. Every field is optional; the service fills in defaults on create.
type TemplatePayload struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Image               string   `json:"image"`
	Category            string   `json:"category"`
	BaseURL             string   `json:"baseUrl"`
	WalkthroughVideoURL string   `json:"walkthroughVideoUrl"`
	Status              string   `json:"status" validate:"omitempty,oneof=draft published pending"`
	Source              string   `json:"source" validate:"omitempty,oneof=admin submission"`
	Creator             Creator  `json:"creator"`
	Features            []string `json:"features"`
	UseCases            []string `json:"useCases"`
}

// Creator mirrors the nested creator block of the entity.
type Creator struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description"`
}

// PublishPayload selects the desired publish state for a template.
type PublishPayload struct {
	Publish *bool `json:"publish" validate:"required"`
}

func (p TemplatePayload) toTemplate() models.Template {
	return models.Template{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		Image:               p.Image,
		Category:            p.Category,
		BaseURL:             p.BaseURL,
		WalkthroughVideoURL: p.WalkthroughVideoURL,
		Status:              models.Status(p.Status),
		Source:              models.Source(p.Source),
		Creator: models.Creator{
			Name:        p.Creator.Name,
			Email:       p.Creator.Email,
			Description: p.Creator.Description,
		},
		Features: p.Features,
		UseCases: p.UseCases,
	}
}

// validateListBounds rejects feature/use-case lists carrying more than
// maxListEntries non-blank entries. Blank padding entries from the edit
// form do not count toward the bound.
func validateListBounds(p TemplatePayload) error {
	for name, items := range map[string][]string{"features": p.Features, "useCases": p.UseCases} {
		nonBlank := 0
		for _, item := range items {
			if strings.TrimSpace(item) != "" {
				nonBlank++
			}
		}
		if nonBlank > maxListEntries {
			return fmt.Errorf("'%s' may contain at most %d entries", name, maxListEntries)
		}
	}
	return nil
}

// ListPublishedTemplates godoc
// @Summary List published templates
// @Description Retrieves all published templates, newest first.
// @Tags templates
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /templates [get]
func (h *ApplicationHandler) ListPublishedTemplates(c *fiber.Ctx) error {
	templates, err := h.Templates.ListPublished()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve templates")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get one template
// @Description Retrieves a single template by id.
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /templates/{id} [get]
func (h *ApplicationHandler) GetTemplate(c *fiber.Ctx) error {
	id := c.Params("id")

	template, err := h.Templates.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Template with ID %s not found", id))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve template %s", id))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, template)
}

// ListAllTemplates returns every template regardless of status. Admin only.
func (h *ApplicationHandler) ListAllTemplates(c *fiber.Ctx) error {
	templates, err := h.Templates.ListAll()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve templates")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, templates)
}

// CreateTemplate creates a new catalog entry from the admin form.
func (h *ApplicationHandler) CreateTemplate(c *fiber.Ctx) error {
	payload := new(TemplatePayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing template payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse template JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}
	if err := validateListBounds(*payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	created, err := h.Templates.Create(payload.toTemplate())
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create template")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, created)
}

// UpdateTemplate overwrites an existing catalog entry in full.
func (h *ApplicationHandler) UpdateTemplate(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(TemplatePayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing template payload for %s: %v", id, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse template JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}
	if err := validateListBounds(*payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	template := payload.toTemplate()
	template.ID = id

	updated, err := h.Templates.Update(template)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingTemplateID):
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Template ID is required for updates")
		case errors.Is(err, services.ErrTemplateNotFound):
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Template with ID %s not found", id))
		default:
			return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not update template %s", id))
		}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// DeleteTemplate removes a catalog entry by id.
func (h *ApplicationHandler) DeleteTemplate(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.Templates.Delete(id); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete template %s", id))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Template with ID %s deleted", id),
	})
}

// SetTemplatePublishState toggles a template between draft and published.
func (h *ApplicationHandler) SetTemplatePublishState(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(PublishPayload)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse publish JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	updated, err := h.Templates.SetPublishState(id, *payload.Publish)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Template with ID %s not found", id))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not change publish state of template %s", id))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}
