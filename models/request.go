package models

import "time"

// TemplateRequest is one logged access request: a visitor's email paired
// with the template they asked for. Rows are written once and never updated
// or deleted by the application.
type TemplateRequest struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	TemplateID  string    `json:"templateId"`
	RequestedAt time.Time `json:"requestedAt"`
}

// TemplateRequestRow mirrors the requests table.
type TemplateRequestRow struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	TemplateID  string    `json:"template_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func RowToTemplateRequest(row TemplateRequestRow) TemplateRequest {
	return TemplateRequest{
		ID:          row.ID,
		Email:       row.Email,
		TemplateID:  row.TemplateID,
		RequestedAt: row.RequestedAt,
	}
}

func TemplateRequestToRow(r TemplateRequest) TemplateRequestRow {
	return TemplateRequestRow{
		ID:          r.ID,
		Email:       r.Email,
		TemplateID:  r.TemplateID,
		RequestedAt: r.RequestedAt,
	}
}
