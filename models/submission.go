package models

import (
	"strings"
	"time"
)

// TemplateSubmission is the public "submit your template" form payload. It
// has no storage of its own: it is converted 1:1 into a pending Template.
type TemplateSubmission struct {
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	TemplateName        string    `json:"templateName"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	BuilderDescription  string    `json:"builderDescription"`
	BaseURL             string    `json:"baseUrl"`
	WalkthroughVideoURL string    `json:"walkthroughVideoUrl"`
	SubmittedAt         time.Time `json:"submittedAt"`
}

// CreatorName joins the submitted first and last names, trimming the result
// so a missing half does not leave stray whitespace.
func (s TemplateSubmission) CreatorName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
