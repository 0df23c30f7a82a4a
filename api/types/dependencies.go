package types

import (
	"github.com/podbrief/summary-api/internal/database"
	"github.com/podbrief/summary-api/internal/services/budget"
	"github.com/podbrief/summary-api/internal/services/jobs"
	"github.com/podbrief/summary-api/internal/services/metadata"
	"github.com/podbrief/summary-api/internal/services/pipeline"
	"github.com/podbrief/summary-api/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	JobService      jobs.Service
	BudgetService   budget.Service
	MetadataService metadata.Service
	Orchestrator    *pipeline.Orchestrator
	WorkerPool      *workers.WorkerPool
}
