package handlers

import (
	"net/http"

	apperrors "gotix/internal/errors"
	"gotix/internal/middleware"
	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

// Register - POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "registration success", user)
}

// Login - POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "login success", models.LoginResponse{Token: token})
}

// Me - GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	userID, okAuth := middleware.UserIDFromContext(c.Request.Context())
	if !okAuth {
		fail(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.services.Auth.Me(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success fetch profile", user)
}

// Activation - POST /api/auth/activation
func (h *Handlers) Activation(c *gin.Context) {
	var req models.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.services.Auth.Activate(c.Request.Context(), req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "user successfully activated", user)
}
