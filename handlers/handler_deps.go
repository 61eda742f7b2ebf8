package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"templatehub/api-gateway/services"
)

var validate = validator.New()

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Templates   *services.TemplateService
	Submissions *services.SubmissionService
	Requests    *services.RequestService
	Auth        *services.AuthService
	Logger      *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(
	templates *services.TemplateService,
	submissions *services.SubmissionService,
	requests *services.RequestService,
	auth *services.AuthService,
	logger *logrus.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		Templates:   templates,
		Submissions: submissions,
		Requests:    requests,
		Auth:        auth,
		Logger:      logger,
	}
}
