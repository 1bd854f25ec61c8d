package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/config"
	"github.com/crisphq/crisp-backend/internal/database"
	"github.com/crisphq/crisp-backend/internal/handler"
	"github.com/crisphq/crisp-backend/internal/logger"
	"github.com/crisphq/crisp-backend/internal/oracle"
	"github.com/crisphq/crisp-backend/internal/router"
	"github.com/crisphq/crisp-backend/internal/service"
	"github.com/crisphq/crisp-backend/internal/store"
	"github.com/crisphq/crisp-backend/internal/validator"
	"github.com/crisphq/crisp-backend/internal/ws"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Msg("Starting Crisp interview backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Session Store ─────────────────────────────────────────────────
	sessions, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize session store")
	}
	defer cleanup()

	// ─── Oracle Client ─────────────────────────────────────────────────
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; all oracle calls will use fallback values")
	}
	gemini := oracle.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	oracleClient := oracle.NewClient(gemini, cfg.OracleTimeout, log)

	// ─── Dashboard Hub ─────────────────────────────────────────────────
	hub := ws.NewHub(log)

	// ─── Services ──────────────────────────────────────────────────────
	interviewService := service.NewInterviewService(sessions, oracleClient, hub, log)
	resumeService := service.NewResumeService(cfg, log)

	// ─── Handlers & Router ─────────────────────────────────────────────
	handlers := &router.Handlers{
		Interview: handler.NewInterviewHandler(interviewService),
		Candidate: handler.NewCandidateHandler(interviewService),
		Resume:    handler.NewResumeHandler(resumeService, log),
		Dashboard: handler.NewDashboardHandler(hub, log, cfg.AllowedOrigins),
	}
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

	log.Info().Msg("Shutdown complete")
}

// buildStore selects the session store backend from configuration.
// The cleanup func closes whatever connection the driver opened.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.SessionStore, func(), error) {
	switch cfg.StoreDriver {
	case "memory", "":
		log.Info().Msg("Using in-memory session store (volatile)")
		return store.NewMemoryStore(), func() {}, nil

	case "redis":
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(rdb), func() { rdb.Close() }, nil

	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		pg, err := store.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
