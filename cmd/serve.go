package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/podbrief/summary-api/api"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/database"
	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/budget"
	"github.com/podbrief/summary-api/internal/services/cleanup"
	"github.com/podbrief/summary-api/internal/services/jobs"
	"github.com/podbrief/summary-api/internal/services/metadata"
	"github.com/podbrief/summary-api/internal/services/pipeline"
	"github.com/podbrief/summary-api/internal/services/storage"
	"github.com/podbrief/summary-api/internal/services/summarize"
	"github.com/podbrief/summary-api/internal/services/transcription"
	"github.com/podbrief/summary-api/internal/services/tts"
	"github.com/podbrief/summary-api/internal/services/workers"
	"github.com/podbrief/summary-api/pkg/config"
	"github.com/podbrief/summary-api/pkg/download"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the PodBrief Summary API server with the configured settings.

The server accepts summary requests, runs them as background jobs through
the transcription / summarization / speech pipeline, and serves job status,
episode metadata lookup and budget endpoints.

Example:
  summary-api serve
  summary-api serve --port 9090
  summary-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(&models.Job{}, &models.BudgetPeriod{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	deps, pool, sweeper, err := buildDependencies(cmd.Context(), cfg, db)
	if err != nil {
		return err
	}

	if pool != nil {
		if err := pool.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start worker pool: %w", err)
		}
		defer pool.Stop()
	}

	if sweeper != nil {
		sweeper.Start(context.Background())
		defer sweeper.Stop()
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	log.Printf("[INFO] Starting PodBrief Summary API server on %s:%d", serverHost, serverPort)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		log.Printf("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
		log.Printf("[INFO] Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires the service stack. When no transcription provider
// is configured the pipeline and worker pool are left out; submission
// endpoints reject requests until credentials are supplied, while metadata
// and budget endpoints keep working.
func buildDependencies(ctx context.Context, cfg *config.Config, db *database.DB) (*types.Dependencies, *workers.WorkerPool, *cleanup.Service, error) {
	jobService := jobs.NewService(jobs.NewRepository(db.DB), cfg.Jobs.Retention)

	budgetService := budget.NewService(
		budget.NewRepository(db.DB),
		budget.Pricing{
			TranscriptionPerMinute: cfg.Pricing.TranscriptionPerMinute,
			SummarizationFlat:      cfg.Pricing.SummarizationFlat,
			TTSPerChar:             cfg.Pricing.TTSPerChar,
		},
		budget.Limits{
			PerRequest:       cfg.Budget.PerRequestLimit,
			Monthly:          cfg.Budget.MonthlyLimit,
			WarningThreshold: cfg.Budget.WarningThreshold,
		},
	)

	metadataService := metadata.NewService(metadata.Config{
		OEmbedBaseURL:     cfg.Metadata.OEmbedBaseURL,
		SearchBaseURL:     cfg.Metadata.SearchBaseURL,
		SearchAPIKey:      cfg.Metadata.SearchAPIKey,
		Timeout:           cfg.Metadata.Timeout,
		RequestsPerMinute: cfg.Metadata.RequestsPerMinute,
	})

	deps := &types.Dependencies{
		DB:              db,
		JobService:      jobService,
		BudgetService:   budgetService,
		MetadataService: metadataService,
	}

	sweeper := cleanup.NewService(jobService, cfg.Jobs.Retention, cfg.Jobs.SweepInterval)

	downloader := download.NewDownloader(download.Options{
		MaxSize:   cfg.Download.MaxSize,
		Timeout:   cfg.Download.Timeout,
		UserAgent: cfg.Download.UserAgent,
	})

	transcriber, err := transcription.NewFromConfig(cfg, downloader)
	if err != nil {
		if errors.Is(err, transcription.ErrNoCredentials) {
			log.Printf("[WARN] No transcription credentials configured, summary submission disabled")
			return deps, nil, sweeper, nil
		}
		return nil, nil, nil, fmt.Errorf("failed to configure transcription: %w", err)
	}
	log.Printf("[INFO] Transcription provider: %s", transcriber.Provider())

	summarizer := summarize.NewService(summarize.Config{
		APIKey:  cfg.Summarizer.APIKey,
		BaseURL: cfg.Summarizer.BaseURL,
		Model:   cfg.Summarizer.Model,
	}, cfg.Speaking.WordsPerMinute)

	synthesizer := tts.NewService(tts.Config{
		APIKey:    cfg.TTS.APIKey,
		Model:     cfg.TTS.Model,
		Voice:     cfg.TTS.Voice,
		MaxChars:  cfg.TTS.MaxChars,
		ChunkSize: cfg.TTS.ChunkSize,
	}, cfg.Speaking.WordsPerMinute)

	store, err := storage.New(ctx, storage.Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		KeyPrefix:     cfg.Storage.KeyPrefix,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		UsePathStyle:  cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to configure storage: %w", err)
	}

	orchestrator := pipeline.NewOrchestrator(
		transcriber, summarizer, synthesizer, store, budgetService,
		cfg.Speaking.WordsPerMinute,
	)
	deps.Orchestrator = orchestrator

	processor := workers.NewSummaryProcessor(orchestrator, jobService, cfg.Jobs.Timeout)
	pool := workers.NewWorkerPool(jobService, processor, cfg.Jobs.Workers, cfg.Jobs.PollInterval)
	deps.WorkerPool = pool

	return deps, pool, sweeper, nil
}
