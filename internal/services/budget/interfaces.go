package budget

import (
	"context"

	"github.com/podbrief/summary-api/internal/models"
)

// Pricing holds provider prices in USD. These are policy values supplied
// from configuration, never hardcoded at call sites.
type Pricing struct {
	TranscriptionPerMinute float64
	SummarizationFlat      float64
	TTSPerChar             float64
}

// Limits holds the spend ceilings in USD
type Limits struct {
	PerRequest       float64
	Monthly          float64
	WarningThreshold float64
}

// Service defines the business logic interface for cost tracking
type Service interface {
	// EstimateRequest projects the cost of a summary request before any
	// provider is called.
	EstimateRequest(request models.SummaryRequest) models.CostBreakdown

	// ActualCost computes the realized cost from what the pipeline
	// actually transcribed and synthesized.
	ActualCost(transcribedMinutes float64, summaryChars int) models.CostBreakdown

	// Authorize rejects work whose estimate would breach the per-request
	// ceiling or push the current month past the monthly ceiling.
	Authorize(ctx context.Context, estimate models.CostBreakdown) error

	// RecordSpend adds realized spend to the current month
	RecordSpend(ctx context.Context, amount float64) error

	// Status reports the current month's spend and remaining headroom
	Status(ctx context.Context) (*Status, error)
}

// Status describes the current budget period
type Status struct {
	Period    string  `json:"period"`
	Spent     float64 `json:"spent"`
	Limit     float64 `json:"limit"`
	Remaining float64 `json:"remaining"`
	Warning   bool    `json:"warning"`
}
