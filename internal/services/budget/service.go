package budget

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/transcript"
)

// Service errors
var (
	ErrPerRequestLimitExceeded = errors.New("estimated cost exceeds per-request limit")
	ErrMonthlyLimitExceeded    = errors.New("estimated cost exceeds remaining monthly budget")
)

// averageCharsPerWord approximates English prose including spaces, used to
// project TTS character counts from a word target.
const averageCharsPerWord = 6

type service struct {
	repo    Repository
	pricing Pricing
	limits  Limits
	now     func() time.Time
}

// NewService creates a budget service backed by the given ledger
func NewService(repo Repository, pricing Pricing, limits Limits) Service {
	return &service{
		repo:    repo,
		pricing: pricing,
		limits:  limits,
		now:     time.Now,
	}
}

func (s *service) EstimateRequest(request models.SummaryRequest) models.CostBreakdown {
	var totalMinutes float64
	for _, episode := range request.Episodes {
		totalMinutes += float64(episode.Duration) / 60.0
	}

	targetWords := transcript.TargetWordCount(request.TargetDuration, transcript.DefaultWordsPerMinute)
	estimatedChars := targetWords * averageCharsPerWord

	return s.breakdown(totalMinutes, estimatedChars)
}

func (s *service) ActualCost(transcribedMinutes float64, summaryChars int) models.CostBreakdown {
	return s.breakdown(transcribedMinutes, summaryChars)
}

func (s *service) breakdown(minutes float64, chars int) models.CostBreakdown {
	cb := models.CostBreakdown{
		Transcription: minutes * s.pricing.TranscriptionPerMinute,
		Summarization: s.pricing.SummarizationFlat,
		TTS:           float64(chars) * s.pricing.TTSPerChar,
	}
	cb.Total = cb.Transcription + cb.Summarization + cb.TTS
	return cb
}

func (s *service) Authorize(ctx context.Context, estimate models.CostBreakdown) error {
	if estimate.Total > s.limits.PerRequest {
		return fmt.Errorf("%w: estimated $%.4f, limit $%.2f",
			ErrPerRequestLimitExceeded, estimate.Total, s.limits.PerRequest)
	}

	period := models.PeriodKey(s.now())
	row, err := s.repo.GetPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("checking monthly spend: %w", err)
	}

	if row.Spent+estimate.Total > s.limits.Monthly {
		return fmt.Errorf("%w: spent $%.4f this month, estimated $%.4f, limit $%.2f",
			ErrMonthlyLimitExceeded, row.Spent, estimate.Total, s.limits.Monthly)
	}

	if s.limits.WarningThreshold > 0 && row.Spent+estimate.Total >= s.limits.WarningThreshold {
		log.Printf("[WARN] Monthly spend approaching limit: $%.4f of $%.2f after this request",
			row.Spent+estimate.Total, s.limits.Monthly)
	}

	return nil
}

func (s *service) RecordSpend(ctx context.Context, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("spend amount must be non-negative, got %.4f", amount)
	}
	if amount == 0 {
		return nil
	}

	period := models.PeriodKey(s.now())
	if err := s.repo.AddSpend(ctx, period, amount); err != nil {
		return fmt.Errorf("recording spend: %w", err)
	}

	log.Printf("[DEBUG] Recorded $%.4f spend for period %s", amount, period)

	return nil
}

func (s *service) Status(ctx context.Context) (*Status, error) {
	period := models.PeriodKey(s.now())
	row, err := s.repo.GetPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("getting budget status: %w", err)
	}

	remaining := s.limits.Monthly - row.Spent
	if remaining < 0 {
		remaining = 0
	}

	return &Status{
		Period:    period,
		Spent:     row.Spent,
		Limit:     s.limits.Monthly,
		Remaining: remaining,
		Warning:   s.limits.WarningThreshold > 0 && row.Spent >= s.limits.WarningThreshold,
	}, nil
}
