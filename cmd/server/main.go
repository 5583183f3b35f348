package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/iqbalrpambudi/disc-examination/internal/config"
	"github.com/iqbalrpambudi/disc-examination/internal/dataset"
	"github.com/iqbalrpambudi/disc-examination/internal/export"
	"github.com/iqbalrpambudi/disc-examination/internal/handler"
	"github.com/iqbalrpambudi/disc-examination/internal/logger"
	"github.com/iqbalrpambudi/disc-examination/internal/mail"
	"github.com/iqbalrpambudi/disc-examination/internal/router"
	"github.com/iqbalrpambudi/disc-examination/internal/service"
	"github.com/iqbalrpambudi/disc-examination/internal/store"
	"github.com/iqbalrpambudi/disc-examination/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting DISC Examination Service")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Bundled Datasets ─────────────────────────────────────────
	bank, catalog, err := dataset.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load bundled datasets")
	}
	log.Info().Int("questions", bank.Len()).Msg("Datasets loaded")

	// ─── Select Session Store ──────────────────────────────────────────
	var sessions store.SessionStore
	if cfg.RedisURL != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		sessions = store.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		memStore := store.NewMemoryStore(cfg.SessionTTL, log)
		go memStore.StartJanitor(ctx, time.Minute)
		sessions = memStore
	}

	// ─── Initialize Services ──────────────────────────────────────────
	assessmentService, err := service.NewAssessmentService(sessions, bank, cfg.QuestionCount, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize assessment service")
	}
	reportService := service.NewReportService(catalog)

	rasterizer, err := export.NewChromeRasterizer(cfg.ChromeBin, cfg.ExportWidthPx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to launch headless browser")
	}
	defer rasterizer.Close()
	pipeline := export.NewPipeline(rasterizer, log)

	gateway := mail.NewSMTPGateway(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Assessment: handler.NewAssessmentHandler(assessmentService),
		Report:     handler.NewReportHandler(assessmentService, reportService, pipeline, gateway, cfg.HREmail),
		WS:         handler.NewWSHandler(assessmentService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stop the janitor and release the browser before exit.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
