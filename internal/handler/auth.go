package handler

import (
	"errors"
	"net/http"

	"ai-diary/internal/logger"
	"ai-diary/internal/middleware"
	"ai-diary/internal/model"
	"ai-diary/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	a, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		logger.Error("signup failed", "email", req.Email, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	logger.Info("signup.ok", "account_id", a.ID, "email", a.Email)
	h.respondWithToken(c, a)
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	a, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountDeleted) {
			c.JSON(http.StatusForbidden, gin.H{"error": "account has been deleted"})
			return
		}
		logger.Warn("login.failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	logger.Info("login.ok", "account_id", a.ID, "email", a.Email)
	h.respondWithToken(c, a)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, a *model.Account) {
	token, err := middleware.Sign(a.ID, a.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token signing failed"})
		return
	}
	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.User{ID: a.ID, Email: a.Email},
	})
}
