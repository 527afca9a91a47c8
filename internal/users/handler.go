package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/server/respond"
)

// Handler exposes registration and login over HTTP.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the auth endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Service.Register(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch),
			errors.Is(err, ErrWeakPassword),
			errors.Is(err, ErrEmailTaken),
			errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	respond.OK(c, res)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	respond.OK(c, res)
}
