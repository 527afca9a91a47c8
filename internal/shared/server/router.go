package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/analyses"
	googleauth "projectdocs-backend/internal/auth"
	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/shared/config"
	"projectdocs-backend/internal/shared/metrics"
	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/server/respond"
	"projectdocs-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	UsersHandler     *users.Handler
	GoogleAuth       *googleauth.GoogleService
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.AnalysesHandler != nil {
		deps.AnalysesHandler.RegisterRoutes(api)
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
