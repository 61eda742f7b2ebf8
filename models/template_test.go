package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRowRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	original := Template{
		ID:                  "tpl-1",
		Title:               "CRM Tracker",
		Description:         "Track customers",
		Image:               "https://example.com/cover.png",
		Category:            "Sales",
		BaseURL:             "https://airtable.com/base/1",
		WalkthroughVideoURL: "https://youtu.be/abc",
		Status:              StatusPublished,
		Source:              SourceAdmin,
		Creator: Creator{
			Name:        "Jane Doe",
			Email:       "jane@x.com",
			Description: "Builder of things",
		},
		Features:  []string{"Pipelines", "Reminders"},
		UseCases:  []string{"Sales teams"},
		CreatedAt: created,
	}

	roundTripped := RowToTemplate(TemplateToRow(original))
	assert.Equal(t, original, roundTripped)
}

func TestTemplateRowRoundTripEmpty(t *testing.T) {
	roundTripped := RowToTemplate(TemplateToRow(Template{ID: "tpl-2"}))

	assert.Equal(t, "tpl-2", roundTripped.ID)
	assert.Empty(t, roundTripped.Title)
	assert.Empty(t, roundTripped.Creator.Name)
	assert.True(t, roundTripped.CreatedAt.IsZero())
	// Absent arrays come back as empty slices, never nil.
	assert.NotNil(t, roundTripped.Features)
	assert.Len(t, roundTripped.Features, 0)
	assert.NotNil(t, roundTripped.UseCases)
	assert.Len(t, roundTripped.UseCases, 0)
}

func TestTemplateToRowNullsEmptyFields(t *testing.T) {
	row := TemplateToRow(Template{ID: "tpl-3", Title: "Only title"})

	assert.NotNil(t, row.Title)
	assert.Equal(t, "Only title", *row.Title)
	assert.Nil(t, row.Description)
	assert.Nil(t, row.CreatorName)
	assert.Nil(t, row.Status)
	assert.Nil(t, row.CreatedAt)
}

func TestRowToTemplateNestsCreator(t *testing.T) {
	name := "Sam Smith"
	email := "sam@x.com"

	template := RowToTemplate(TemplateRow{
		ID:           "tpl-4",
		CreatorName:  &name,
		CreatorEmail: &email,
	})

	assert.Equal(t, "Sam Smith", template.Creator.Name)
	assert.Equal(t, "sam@x.com", template.Creator.Email)
	assert.Empty(t, template.Creator.Description)
}

func TestSubmissionCreatorName(t *testing.T) {
	tests := []struct {
		name       string
		submission TemplateSubmission
		expected   string
	}{
		{"both names", TemplateSubmission{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", TemplateSubmission{FirstName: "Jane"}, "Jane"},
		{"last only", TemplateSubmission{LastName: "Doe"}, "Doe"},
		{"neither", TemplateSubmission{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.submission.CreatorName())
		})
	}
}

func TestRequestRowRoundTrip(t *testing.T) {
	original := TemplateRequest{
		ID:          "req-1",
		Email:       "user@example.com",
		TemplateID:  "tpl-1",
		RequestedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, original, RowToTemplateRequest(TemplateRequestToRow(original)))
}
