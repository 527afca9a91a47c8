package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.DELETE("/documents/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, contentType, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidContentType):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidContentType.Error(), nil)
		case errors.Is(err, ErrCapExceeded):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrCapExceeded.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc, nil))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	respond.JSON(c, http.StatusOK, docs)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, documentID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
