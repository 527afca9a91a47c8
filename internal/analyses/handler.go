package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/llm"
	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/server/respond"
)

// Handler wires the analyze endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/analyze", h.analyze)
}

type analyzeRequest struct {
	DocumentIDs []string `json:"documentIds"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	err := h.Svc.AnalyzeBatch(c.Request.Context(), userID, req.DocumentIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDocuments):
			respond.Error(c, http.StatusNotFound, "not_found", "no documents found", nil)
		case errors.Is(err, llm.ErrUpstreamUnavailable):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "analysis service unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze documents", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Analysis completed successfully"})
}
