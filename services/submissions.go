package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"templatehub/api-gateway/models"
)

// SubmissionService converts public visitor submissions into pending
// catalog entries. Submissions have no storage of their own; they land in
// the same templates table as admin-created entries.
type SubmissionService struct {
	db               *supa.Client
	templates        *TemplateService
	placeholderImage string
	log              *logrus.Logger
}

func NewSubmissionService(db *supa.Client, templates *TemplateService, placeholderImage string, log *logrus.Logger) *SubmissionService {
	return &SubmissionService{
		db:               db,
		templates:        templates,
		placeholderImage: placeholderImage,
		log:              log,
	}
}

// CreateFromSubmission maps a visitor form 1:1 onto a new template with
// status pending and source submission, then inserts and re-reads it. The
// creator name is the trimmed join of first and last name, and the image is
// a fixed placeholder until an admin replaces it.
func (s *SubmissionService) CreateFromSubmission(sub models.TemplateSubmission) (*models.Template, error) {
	template := models.Template{
		ID:                  uuid.NewString(),
		Title:               sub.TemplateName,
		Description:         sub.Description,
		Image:               s.placeholderImage,
		Category:            sub.Category,
		BaseURL:             sub.BaseURL,
		WalkthroughVideoURL: sub.WalkthroughVideoURL,
		Status:              models.StatusPending,
		Source:              models.SourceSubmission,
		Creator: models.Creator{
			Name:        sub.CreatorName(),
			Email:       sub.Email,
			Description: sub.BuilderDescription,
		},
		Features: []string{},
		UseCases: []string{},
	}

	row := models.TemplateToRow(template)
	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	row.CreatedAt = &submittedAt

	if _, _, err := s.db.From(templatesTable).
		Insert(row, false, "", "minimal", "").
		Execute(); err != nil {
		s.log.Errorf("Error inserting submitted template %s: %v", template.ID, err)
		return nil, fmt.Errorf("creating template from submission: %w", err)
	}

	created, err := s.templates.GetByID(template.ID)
	if err != nil {
		s.log.Errorf("Submitted template %s inserted but could not be re-read: %v", template.ID, err)
		return nil, fmt.Errorf("submission stored but retrieval failed: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"template_id": created.ID,
		"creator":     created.Creator.Name,
	}).Info("Template created from public submission")
	return created, nil
}
