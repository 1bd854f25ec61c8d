package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/crisphq/crisp-backend/internal/config"
	"github.com/crisphq/crisp-backend/internal/handler"
	"github.com/crisphq/crisp-backend/internal/middleware"
	"github.com/crisphq/crisp-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Interview *handler.InterviewHandler
	Candidate *handler.CandidateHandler
	Resume    *handler.ResumeHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the endpoints that fan out to the oracle or do
	// CPU-heavy document parsing (30 requests per minute per IP).
	aiLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Candidate interview flow ──────────────────────────────────────
	interview := router.Group("/api/v1/interview")
	{
		interview.POST("/generate-questions", aiLimiter.Middleware(), handlers.Interview.GenerateQuestions)
		interview.POST("/save-answer", handlers.Interview.SaveAnswer)
		interview.POST("/score", handlers.Interview.Score)
		interview.POST("/complete-profile", handlers.Interview.CompleteProfile)
		interview.POST("/parse-resume", aiLimiter.Middleware(), handlers.Resume.ParseResume)
	}

	// ─── Reviewer dashboard ────────────────────────────────────────────
	candidates := router.Group("/api/v1/candidates")
	{
		candidates.GET("", handlers.Candidate.ListCandidates)
		candidates.GET("/:id", handlers.Candidate.GetCandidate)
	}

	// ─── Dashboard event stream ────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/dashboard/stream", handlers.Dashboard.Stream)
	}

	return router
}
