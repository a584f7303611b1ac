package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studysync/studysync-backend/internal/config"
	"github.com/studysync/studysync-backend/internal/handler"
	"github.com/studysync/studysync-backend/internal/middleware"
	"github.com/studysync/studysync-backend/internal/response"
	"github.com/studysync/studysync-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Submission *handler.SubmissionHandler
	Major      *handler.MajorHandler
	Professor  *handler.ProfessorHandler
	Health     *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", handlers.Health.Health)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Submissions Group (JWT) ────────────────────────────────────
	submissions := router.Group("/api/v1/submissions")
	submissions.Use(middleware.RequireJWT(authService))
	{
		submissions.POST("/difficulty", handlers.Submission.SubmitDifficulty)
		submissions.POST("/professor", handlers.Submission.SubmitProfessorRating)
	}

	// ─── 3. Public Read Group ──────────────────────────────────────────
	majors := router.Group("/api/v1/majors")
	{
		majors.GET("", handlers.Major.ListMajors)
		majors.GET("/:major/stats", handlers.Major.GetMajorStats)
		majors.GET("/:major/classes", handlers.Major.GetClassRankings)
	}

	professors := router.Group("/api/v1/professors")
	{
		professors.GET("/:professor/ratings", handlers.Professor.GetProfessorRatings)
	}

	return router
}
