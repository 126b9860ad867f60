package dto

import "github.com/inverness4444/quadrant-landing-sub000/internal/model"

// GenerateReportRequest names the quarter to materialize.
type GenerateReportRequest struct {
	Year    int `json:"year"    binding:"required,min=2000,max=2100"`
	Quarter int `json:"quarter" binding:"required,min=1,max=4"`
}

// LockReportRequest locks or unlocks a quarter.
type LockReportRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// UpdateReportNotesRequest edits the free-text notes of an unlocked report.
type UpdateReportNotesRequest struct {
	Notes string `json:"notes" binding:"max=8000"`
}

// ReportResponse is the stored report plus its frozen payload.
type ReportResponse struct {
	ID          string              `json:"id"`
	Year        int                 `json:"year"`
	Quarter     int                 `json:"quarter"`
	Locked      bool                `json:"locked"`
	Notes       string              `json:"notes,omitempty"`
	GeneratedAt string              `json:"generated_at"`
	Payload     model.ReportPayload `json:"payload"`
}

// ReportListItem is the listing view without the payload body.
type ReportListItem struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Quarter     int    `json:"quarter"`
	Locked      bool   `json:"locked"`
	GeneratedAt string `json:"generated_at"`
}
