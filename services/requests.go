package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"templatehub/api-gateway/models"
)

const requestsTable = "requests"

// Notifier delivers the best-effort access-request notification. The
// concrete implementation lives in internal/webhook; tests supply fakes.
type Notifier interface {
	Notify(ctx context.Context, email, templateID string) error
}

// RequestService records access requests and fires the webhook
// notification.
type RequestService struct {
	db       *supa.Client
	notifier Notifier
	log      *logrus.Logger
}

func NewRequestService(db *supa.Client, notifier Notifier, log *logrus.Logger) *RequestService {
	return &RequestService{db: db, notifier: notifier, log: log}
}

// RequestAccess persists one request row and then notifies the webhook.
// Persisting the row is the success criterion: a webhook failure is logged
// and otherwise ignored, since the record is already committed.
func (s *RequestService) RequestAccess(ctx context.Context, email, templateID string) (*models.TemplateRequest, error) {
	row := models.TemplateRequestRow{
		ID:          uuid.NewString(),
		Email:       email,
		TemplateID:  templateID,
		RequestedAt: time.Now().UTC(),
	}

	body, _, err := s.db.From(requestsTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		s.log.Errorf("Error recording access request for template %s: %v", templateID, err)
		return nil, fmt.Errorf("recording access request: %w", err)
	}

	var rows []models.TemplateRequestRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding access request response: %w", err)
	}
	stored := row
	if len(rows) > 0 {
		stored = rows[0]
	}
	request := models.RowToTemplateRequest(stored)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, email, templateID); err != nil {
			// Best effort only: the request row is already durable.
			s.log.WithError(err).WithFields(logrus.Fields{
				"template_id": templateID,
			}).Warn("Access request webhook notification failed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  request.ID,
		"template_id": templateID,
	}).Info("Access request recorded")
	return &request, nil
}

// ListByTemplate returns the access-request audit log for one template,
// newest first.
func (s *RequestService) ListByTemplate(templateID string) ([]models.TemplateRequest, error) {
	body, _, err := s.db.From(requestsTable).
		Select("*", "", false).
		Eq("template_id", templateID).
		Order("requested_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		s.log.Errorf("Error fetching requests for template %s: %v", templateID, err)
		return nil, fmt.Errorf("fetching requests for template %s: %w", templateID, err)
	}

	var rows []models.TemplateRequestRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding requests for template %s: %w", templateID, err)
	}

	requests := make([]models.TemplateRequest, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, models.RowToTemplateRequest(r))
	}
	return requests, nil
}
