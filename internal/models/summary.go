package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Valid target durations for a summary, in minutes.
var ValidTargetDurations = []int{1, 5, 10}

// Episode is one podcast episode submitted for summarization.
// Transcript is empty on input and filled in during pipeline execution.
// Timestamp is a spoiler cutoff in seconds and is only meaningful for the
// last episode of a request.
type Episode struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	ShowName   string `json:"showName,omitempty"`
	Duration   int    `json:"duration"`
	AudioURL   string `json:"audioUrl,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Timestamp  int    `json:"timestamp,omitempty"`
}

// SummaryRequest is the input to the summary pipeline: an ordered list of
// episodes plus a target output duration in minutes.
type SummaryRequest struct {
	Episodes       []Episode `json:"episodes"`
	TargetDuration int       `json:"targetDuration"`
}

// Validate checks the request invariants before a job is created.
func (r *SummaryRequest) Validate() error {
	if len(r.Episodes) == 0 {
		return errors.New("at least one episode is required")
	}

	valid := false
	for _, d := range ValidTargetDurations {
		if r.TargetDuration == d {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("target duration must be one of %v minutes, got %d", ValidTargetDurations, r.TargetDuration)
	}

	for i, ep := range r.Episodes {
		if ep.Title == "" {
			return fmt.Errorf("episode %d is missing a title", i+1)
		}
		if ep.Duration < 0 {
			return fmt.Errorf("episode %q has negative duration", ep.Title)
		}
		if ep.Timestamp > 0 && ep.Duration > 0 && ep.Timestamp > ep.Duration {
			return fmt.Errorf("episode %q cutoff timestamp %ds exceeds duration %ds", ep.Title, ep.Timestamp, ep.Duration)
		}
	}

	return nil
}

// Value implements driver.Valuer so the request can be stored as a JSON column.
func (r SummaryRequest) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for SummaryRequest.
func (r *SummaryRequest) Scan(value interface{}) error {
	if value == nil {
		*r = SummaryRequest{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, r)
}

// ProcessingProgress is a point-in-time progress snapshot for a running job.
// Percentage is in [0,100] and is monotonically non-decreasing over a job's
// lifetime by convention. EpisodeIndex/EpisodeTotal are optional and used for
// per-episode reporting during transcription.
type ProcessingProgress struct {
	Step         string `json:"step"`
	Percentage   int    `json:"percentage"`
	Message      string `json:"message"`
	EpisodeIndex int    `json:"episodeIndex,omitempty"`
	EpisodeTotal int    `json:"episodeTotal,omitempty"`
}

// Value implements driver.Valuer for ProcessingProgress.
func (p *ProcessingProgress) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for ProcessingProgress.
func (p *ProcessingProgress) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, p)
}

// CostBreakdown itemizes the monetary cost of one pipeline run in USD.
// Total is always the sum of the three components.
type CostBreakdown struct {
	Transcription float64 `json:"transcription"`
	Summarization float64 `json:"summarization"`
	TTS           float64 `json:"tts"`
	Total         float64 `json:"total"`
}

// SummaryResult is the immutable output of a completed pipeline run.
// ActualDuration and TargetDuration are in seconds.
type SummaryResult struct {
	AudioURL       string        `json:"audioUrl"`
	SummaryText    string        `json:"summaryText"`
	ActualDuration int           `json:"actualDuration"`
	TargetDuration int           `json:"targetDuration"`
	CostBreakdown  CostBreakdown `json:"costBreakdown"`
}

// Value implements driver.Valuer for SummaryResult.
func (r *SummaryResult) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for SummaryResult.
func (r *SummaryResult) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, r)
}
