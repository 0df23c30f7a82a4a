package types

import "github.com/podbrief/summary-api/internal/models"

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// JobAcceptedResponse is returned when a summary request is queued
type JobAcceptedResponse struct {
	Status string `json:"status"`
	JobID  string `json:"jobId"`
}

// JobStatusResponse mirrors the persisted job record for polling clients
type JobStatusResponse struct {
	ID        string                     `json:"id"`
	Status    models.JobStatus           `json:"status"`
	Progress  *models.ProcessingProgress `json:"progress,omitempty"`
	Result    *models.SummaryResult      `json:"result,omitempty"`
	Error     string                     `json:"error,omitempty"`
	CreatedAt string                     `json:"createdAt"`
}

// EstimateResponse is the projected cost of a request before submission
type EstimateResponse struct {
	Estimate models.CostBreakdown `json:"estimate"`
	Allowed  bool                 `json:"allowed"`
	Reason   string               `json:"reason,omitempty"`
}

// BudgetStatusResponse reports spend for the current calendar month
type BudgetStatusResponse struct {
	Period    string  `json:"period"`
	Spent     float64 `json:"spent"`
	Limit     float64 `json:"limit"`
	Remaining float64 `json:"remaining"`
	Warning   bool    `json:"warning"`
}

// MetadataRequest is the lookup input for episode metadata
type MetadataRequest struct {
	URL string `json:"url" binding:"required"`
}
