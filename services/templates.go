// Package services implements the catalog, submission, access-request and
// auth operations on top of the Supabase backend.
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"templatehub/api-gateway/models"
)

const templatesTable = "templates"

// ErrTemplateNotFound is returned when no template exists for a given id.
var ErrTemplateNotFound = errors.New("template not found")

// ErrMissingTemplateID is returned by Update when the template carries no
// id. The check happens before any network call.
var ErrMissingTemplateID = errors.New("template id is required for updates")

// TemplateService provides CRUD over the templates table. It keeps no local
// state: every read goes back to the store.
type TemplateService struct {
	db  *supa.Client
	log *logrus.Logger
}

func NewTemplateService(db *supa.Client, log *logrus.Logger) *TemplateService {
	return &TemplateService{db: db, log: log}
}

// ListPublished returns all published templates, newest first. Draft and
// pending entries never appear here.
func (s *TemplateService) ListPublished() ([]models.Template, error) {
	body, _, err := s.db.From(templatesTable).
		Select("*", "", false).
		Eq("status", string(models.StatusPublished)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		s.log.Errorf("Error fetching published templates: %v", err)
		return nil, fmt.Errorf("fetching published templates: %w", err)
	}
	return decodeTemplates(body)
}

// ListAll returns every template regardless of status, newest first. This
// feeds the admin view.
func (s *TemplateService) ListAll() ([]models.Template, error) {
	body, _, err := s.db.From(templatesTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		s.log.Errorf("Error fetching templates: %v", err)
		return nil, fmt.Errorf("fetching templates: %w", err)
	}
	return decodeTemplates(body)
}

// GetByID returns one template, or ErrTemplateNotFound when the id does not
// exist. Transport failures surface as ordinary errors.
func (s *TemplateService) GetByID(id string) (*models.Template, error) {
	body, _, err := s.db.From(templatesTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		s.log.Errorf("Error fetching template %s: %v", id, err)
		return nil, fmt.Errorf("fetching template %s: %w", id, err)
	}

	var rows []models.TemplateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrTemplateNotFound
	}

	template := models.RowToTemplate(rows[0])
	return &template, nil
}

// Create inserts a new template. A missing id is generated, status defaults
// to draft and source to admin. The inserted row is re-read afterwards: the
// store assigns created_at, so the re-read is the source of truth.
func (s *TemplateService) Create(t models.Template) (*models.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.StatusDraft
	}
	if t.Source == "" {
		t.Source = models.SourceAdmin
	}

	row := models.TemplateToRow(t)
	row.CreatedAt = nil

	if _, _, err := s.db.From(templatesTable).
		Insert(row, false, "", "minimal", "").
		Execute(); err != nil {
		s.log.Errorf("Error inserting template %s: %v", t.ID, err)
		return nil, fmt.Errorf("creating template: %w", err)
	}

	created, err := s.GetByID(t.ID)
	if err != nil {
		s.log.Errorf("Template %s inserted but could not be re-read: %v", t.ID, err)
		return nil, fmt.Errorf("template created but retrieval failed: %w", err)
	}

	s.log.WithField("template_id", created.ID).Info("Template created")
	return created, nil
}

// Update overwrites the stored record with the given template. Every column
// is re-sent, including unchanged ones; there is no partial-patch merge.
func (s *TemplateService) Update(t models.Template) (*models.Template, error) {
	if t.ID == "" {
		return nil, ErrMissingTemplateID
	}

	row := models.TemplateToRow(t)
	// id lives in the filter and created_at is immutable after insert.
	row.ID = ""
	row.CreatedAt = nil

	body, _, err := s.db.From(templatesTable).
		Update(row, "representation", "").
		Eq("id", t.ID).
		Execute()
	if err != nil {
		s.log.Errorf("Error updating template %s: %v", t.ID, err)
		return nil, fmt.Errorf("updating template %s: %w", t.ID, err)
	}

	var rows []models.TemplateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding update response for template %s: %w", t.ID, err)
	}
	if len(rows) == 0 {
		return nil, ErrTemplateNotFound
	}

	updated := models.RowToTemplate(rows[0])
	s.log.WithField("template_id", updated.ID).Info("Template updated")
	return &updated, nil
}

// Delete removes a template by id. Deleting an id that does not exist is
// not treated specially.
func (s *TemplateService) Delete(id string) error {
	if _, _, err := s.db.From(templatesTable).
		Delete("", "").
		Eq("id", id).
		Execute(); err != nil {
		s.log.Errorf("Error deleting template %s: %v", id, err)
		return fmt.Errorf("deleting template %s: %w", id, err)
	}

	s.log.WithField("template_id", id).Info("Template deleted")
	return nil
}

// SetPublishState flips a template between draft and published. It is a
// read-then-write with no version token, so a concurrent editor's changes
// can be overwritten.
func (s *TemplateService) SetPublishState(id string, publish bool) (*models.Template, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if publish {
		current.Status = models.StatusPublished
	} else {
		current.Status = models.StatusDraft
	}
	return s.Update(*current)
}

func decodeTemplates(body []byte) ([]models.Template, error) {
	var rows []models.TemplateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}

	templates := make([]models.Template, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, models.RowToTemplate(row))
	}
	return templates, nil
}
