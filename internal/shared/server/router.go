package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "claritydocs-backend/internal/auth"
	"claritydocs-backend/internal/history"
	"claritydocs-backend/internal/intake"
	"claritydocs-backend/internal/shared/config"
	"claritydocs-backend/internal/shared/server/middleware"
	"claritydocs-backend/internal/shared/server/respond"
	"claritydocs-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	IntakeHandler  *intake.Handler
	HistoryHandler *history.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
}

const analysisRateGroup = "ANALYSIS"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				// Provider-backed routes are expensive; everything else is unmetered.
				analysisRateGroup: {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				path := c.Request.URL.Path
				if strings.HasPrefix(path, "/api/v1/analyses/") ||
					path == "/api/v1/intake/submit" ||
					path == "/api/v1/intake/extract" {
					return analysisRateGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.IntakeHandler != nil {
		deps.IntakeHandler.RegisterRoutes(api)
		deps.IntakeHandler.RegisterAnalysisRoutes(api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
