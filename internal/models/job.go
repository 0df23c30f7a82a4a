package models

import (
	"time"
)

// JobStatus represents the lifecycle state of a summary job.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job tracks one pipeline execution. A job is created in processing status
// when a request is accepted, mutated by progress callbacks while the
// pipeline runs, and transitions exactly once to completed (with Result set)
// or failed (with Error set). Jobs are deleted after a fixed retention
// window regardless of status.
//
// An empty WorkerID marks a job that has been accepted but not yet picked up
// by a worker; claiming sets it. Status stays processing either way.
type Job struct {
	ID          string              `json:"id" gorm:"primaryKey"`
	Status      JobStatus           `json:"status" gorm:"default:'processing';index:idx_jobs_status_worker"`
	Request     SummaryRequest      `json:"-" gorm:"type:json"`
	Progress    *ProcessingProgress `json:"progress" gorm:"type:json"`
	Result      *SummaryResult      `json:"result" gorm:"type:json"`
	Error       string              `json:"error,omitempty"`
	WorkerID    string              `json:"-" gorm:"index:idx_jobs_status_worker"`
	StartedAt   *time.Time          `json:"-"`
	CompletedAt *time.Time          `json:"-"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// IsTerminal returns true once the job has completed or failed.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Claimed returns true if a worker has picked up this job.
func (j *Job) Claimed() bool {
	return j.WorkerID != ""
}

// Expired reports whether the job has outlived the retention window.
// Expired jobs are treated as not-found even before the cleanup sweep
// deletes them.
func (j *Job) Expired(retention time.Duration) bool {
	return time.Since(j.CreatedAt) > retention
}

// TableName specifies the table name for GORM.
func (Job) TableName() string {
	return "jobs"
}
