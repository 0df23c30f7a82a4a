package summaries

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/budget"
	"github.com/podbrief/summary-api/internal/services/jobs"
	"github.com/podbrief/summary-api/internal/services/pipeline"
	"github.com/podbrief/summary-api/internal/services/transcription"
)

type okTranscriber struct{}

func (okTranscriber) Transcribe(ctx context.Context, episode models.Episode) (*transcription.Result, error) {
	return &transcription.Result{Text: "the hosts cover the week in tech", Minutes: 30}, nil
}

func (okTranscriber) Provider() string { return "stub" }

type okSummarizer struct{}

func (okSummarizer) Summarize(ctx context.Context, episodes []models.Episode, targetMinutes int) (string, error) {
	return "A short spoken recap of the episodes.", nil
}

type okSynthesizer struct{}

func (okSynthesizer) Synthesize(ctx context.Context, text string, targetSeconds int) ([]byte, error) {
	return []byte("mp3-bytes"), nil
}

type okStore struct{}

func (okStore) SaveSummaryAudio(ctx context.Context, audio []byte) (string, error) {
	return "https://cdn.example.com/summary-1.mp3", nil
}

type okCosts struct{}

func (okCosts) ActualCost(minutes float64, chars int) models.CostBreakdown {
	return models.CostBreakdown{Total: 0.07}
}

func (okCosts) RecordSpend(ctx context.Context, amount float64) error { return nil }

func setCredentials(t *testing.T) {
	t.Helper()
	viper.Set("fireworks.api_key", "test-key")
	viper.Set("summarizer.api_key", "test-key")
	viper.Set("tts.api_key", "test-key")
	t.Cleanup(func() {
		viper.Set("fireworks.api_key", "")
		viper.Set("summarizer.api_key", "")
		viper.Set("tts.api_key", "")
	})
}

func newTestDeps(t *testing.T) *types.Dependencies {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Job{}, &models.BudgetPeriod{}))

	budgetService := budget.NewService(
		budget.NewRepository(db),
		budget.Pricing{TranscriptionPerMinute: 0.0012, SummarizationFlat: 0.03, TTSPerChar: 0.000015},
		budget.Limits{PerRequest: 5, Monthly: 20, WarningThreshold: 15},
	)

	return &types.Dependencies{
		JobService:    jobs.NewService(jobs.NewRepository(db), jobs.DefaultRetention),
		BudgetService: budgetService,
		Orchestrator: pipeline.NewOrchestrator(
			okTranscriber{}, okSummarizer{}, okSynthesizer{}, okStore{}, okCosts{}, 150,
		),
	}
}

func newTestEngine(deps *types.Dependencies) *gin.Engine {
	engine := gin.New()
	group := engine.Group("/api/v1/summaries")
	RegisterRoutes(group, deps)
	return engine
}

func validRequestBody() string {
	return `{
		"episodes": [{
			"url": "https://open.spotify.com/episode/abc",
			"title": "Deep Dive",
			"duration": 1800,
			"audioUrl": "https://cdn.example.com/ep.mp3"
		}],
		"targetDuration": 5
	}`
}

func TestCreateSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("queues a valid request", func(t *testing.T) {
		setCredentials(t)
		deps := newTestDeps(t)
		engine := newTestEngine(deps)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", strings.NewReader(validRequestBody()))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusAccepted, w.Code)

		var resp types.JobAcceptedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, types.StatusProcessing, resp.Status)
		assert.NotEmpty(t, resp.JobID)

		job, err := deps.JobService.GetJob(context.Background(), resp.JobID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusProcessing, job.Status)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		setCredentials(t)
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", strings.NewReader("{not json"))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects empty episode list", func(t *testing.T) {
		setCredentials(t)
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries",
			strings.NewReader(`{"episodes": [], "targetDuration": 5}`))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at least one episode")
	})

	t.Run("rejects unsupported target duration", func(t *testing.T) {
		setCredentials(t)
		engine := newTestEngine(newTestDeps(t))

		body := `{"episodes": [{"title": "Ep", "duration": 600}], "targetDuration": 7}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", strings.NewReader(body))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("fails without provider credentials", func(t *testing.T) {
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", strings.NewReader(validRequestBody()))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "credentials")
	})

	t.Run("rejects requests over the monthly budget", func(t *testing.T) {
		setCredentials(t)
		deps := newTestDeps(t)
		require.NoError(t, deps.BudgetService.RecordSpend(context.Background(), 19.99))
		engine := newTestEngine(deps)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", strings.NewReader(validRequestBody()))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestGetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the job record", func(t *testing.T) {
		deps := newTestDeps(t)
		engine := newTestEngine(deps)

		job, err := deps.JobService.CreateJob(context.Background(), models.SummaryRequest{
			Episodes:       []models.Episode{{Title: "Ep", Duration: 600}},
			TargetDuration: 1,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries/"+job.ID, nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.JobStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, job.ID, resp.ID)
		assert.Equal(t, models.JobStatusProcessing, resp.Status)
	})

	t.Run("unknown job returns 404", func(t *testing.T) {
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries/no-such-job", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStreamSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("streams progress then complete", func(t *testing.T) {
		setCredentials(t)
		deps := newTestDeps(t)

		engine := newTestEngine(deps)
		server := httptest.NewServer(engine)
		defer server.Close()

		resp, err := http.Post(server.URL+"/api/v1/summaries/stream", "application/json",
			strings.NewReader(validRequestBody()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

		var events []string
		scanner := bufio.NewScanner(resp.Body)
		deadline := time.After(10 * time.Second)
		for scanner.Scan() {
			select {
			case <-deadline:
				t.Fatal("timed out reading SSE stream")
			default:
			}
			line := scanner.Text()
			if strings.HasPrefix(line, "event:") {
				events = append(events, strings.TrimSpace(strings.TrimPrefix(line, "event:")))
			}
		}

		require.NotEmpty(t, events)
		assert.Equal(t, "complete", events[len(events)-1])
		assert.Contains(t, events, "progress")
	})

	t.Run("invalid request is rejected before streaming", func(t *testing.T) {
		setCredentials(t)
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries/stream",
			strings.NewReader(`{"episodes": [], "targetDuration": 5}`))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
