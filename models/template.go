package models

import (
	"time"
)

// Status controls a template's visibility: only published entries appear in
// the public listing. Transitions between statuses are unconstrained.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
)

// Source records where a template came from. It is provenance only and does
// not affect behavior beyond display.
type Source string

const (
	SourceAdmin      Source = "admin"
	SourceSubmission Source = "submission"
)

// Creator holds the nested creator block of a template. All fields are
// individually optional.
type Creator struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Template is one catalog entry, in the shape the frontend consumes:
// camelCased fields with the creator columns folded into a nested object.
type Template struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Image               string    `json:"image"`
	Category            string    `json:"category"`
	BaseURL             string    `json:"baseUrl"`
	WalkthroughVideoURL string    `json:"walkthroughVideoUrl"`
	Status              Status    `json:"status"`
	Source              Source    `json:"source"`
	Creator             Creator   `json:"creator"`
	Features            []string  `json:"features"`
	UseCases            []string  `json:"useCases"`
	CreatedAt           time.Time `json:"createdAt"`
}

// TemplateRow mirrors the templates table: flat snake_case columns with
// nullable text fields as pointers, so unset entity fields are written as
// SQL NULL rather than empty strings.
type TemplateRow struct {
	ID                  string     `json:"id,omitempty"`
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Image               *string    `json:"image"`
	Category            *string    `json:"category"`
	BaseURL             *string    `json:"base_url"`
	WalkthroughVideoURL *string    `json:"walkthrough_video_url"`
	Status              *string    `json:"status"`
	Source              *string    `json:"source"`
	CreatorName         *string    `json:"creator_name"`
	CreatorEmail        *string    `json:"creator_email"`
	CreatorDescription  *string    `json:"creator_description"`
	Features            []string   `json:"features"`
	UseCases            []string   `json:"use_cases"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}

// RowToTemplate converts a stored row into the application entity. Absent
// columns become zero values; absent arrays become empty slices. No
// validation happens here, it is purely structural.
func RowToTemplate(row TemplateRow) Template {
	return Template{
		ID:                  row.ID,
		Title:               deref(row.Title),
		Description:         deref(row.Description),
		Image:               deref(row.Image),
		Category:            deref(row.Category),
		BaseURL:             deref(row.BaseURL),
		WalkthroughVideoURL: deref(row.WalkthroughVideoURL),
		Status:              Status(deref(row.Status)),
		Source:              Source(deref(row.Source)),
		Creator: Creator{
			Name:        deref(row.CreatorName),
			Email:       deref(row.CreatorEmail),
			Description: deref(row.CreatorDescription),
		},
		Features:  orEmpty(row.Features),
		UseCases:  orEmpty(row.UseCases),
		CreatedAt: derefTime(row.CreatedAt),
	}
}

// TemplateToRow is the inverse of RowToTemplate over the defined field set.
// Empty entity fields map back to NULL columns. created_at is only carried
// when set; on plain inserts the store assigns it.
func TemplateToRow(t Template) TemplateRow {
	return TemplateRow{
		ID:                  t.ID,
		Title:               ref(t.Title),
		Description:         ref(t.Description),
		Image:               ref(t.Image),
		Category:            ref(t.Category),
		BaseURL:             ref(t.BaseURL),
		WalkthroughVideoURL: ref(t.WalkthroughVideoURL),
		Status:              ref(string(t.Status)),
		Source:              ref(string(t.Source)),
		CreatorName:         ref(t.Creator.Name),
		CreatorEmail:        ref(t.Creator.Email),
		CreatorDescription:  ref(t.Creator.Description),
		Features:            orEmpty(t.Features),
		UseCases:            orEmpty(t.UseCases),
		CreatedAt:           refTime(t.CreatedAt),
	}
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func refTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
