package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/models"
	budgetService "github.com/podbrief/summary-api/internal/services/budget"
)

func newTestDeps(t *testing.T) *types.Dependencies {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BudgetPeriod{}))

	service := budgetService.NewService(
		budgetService.NewRepository(db),
		budgetService.Pricing{TranscriptionPerMinute: 0.0012, SummarizationFlat: 0.03, TTSPerChar: 0.000015},
		budgetService.Limits{PerRequest: 5, Monthly: 20, WarningThreshold: 15},
	)

	return &types.Dependencies{BudgetService: service}
}

func newTestEngine(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/api/v1/budget")
	RegisterRoutes(group, deps)
	return engine
}

func TestGetStatus(t *testing.T) {
	t.Run("fresh month has full headroom", func(t *testing.T) {
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.BudgetStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Period)
		assert.Zero(t, resp.Spent)
		assert.Equal(t, 20.0, resp.Limit)
		assert.Equal(t, 20.0, resp.Remaining)
		assert.False(t, resp.Warning)
	})

	t.Run("warning flag past the threshold", func(t *testing.T) {
		deps := newTestDeps(t)
		require.NoError(t, deps.BudgetService.RecordSpend(context.Background(), 16.5))
		engine := newTestEngine(deps)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.BudgetStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 16.5, resp.Spent, 0.0001)
		assert.True(t, resp.Warning)
	})

	t.Run("missing service returns 503", func(t *testing.T) {
		engine := newTestEngine(&types.Dependencies{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestEstimate(t *testing.T) {
	requestBody := `{
		"episodes": [{"title": "Ep", "duration": 3600, "audioUrl": "https://cdn.example.com/ep.mp3"}],
		"targetDuration": 5
	}`

	t.Run("projects cost for an allowed request", func(t *testing.T) {
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/budget/estimate", strings.NewReader(requestBody))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.EstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Allowed)
		assert.Empty(t, resp.Reason)

		// 60 min transcription + flat summarization + 5 min of speech
		assert.InDelta(t, 0.072, resp.Estimate.Transcription, 0.0001)
		assert.InDelta(t, 0.03, resp.Estimate.Summarization, 0.0001)
		assert.Greater(t, resp.Estimate.TTS, 0.0)
		assert.InDelta(t, resp.Estimate.Transcription+resp.Estimate.Summarization+resp.Estimate.TTS,
			resp.Estimate.Total, 0.0001)
	})

	t.Run("reports disallowed when budget is exhausted", func(t *testing.T) {
		deps := newTestDeps(t)
		require.NoError(t, deps.BudgetService.RecordSpend(context.Background(), 19.99))
		engine := newTestEngine(deps)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/budget/estimate", strings.NewReader(requestBody))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.EstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Allowed)
		assert.NotEmpty(t, resp.Reason)
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		engine := newTestEngine(newTestDeps(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/budget/estimate",
			strings.NewReader(`{"episodes": [], "targetDuration": 5}`))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
