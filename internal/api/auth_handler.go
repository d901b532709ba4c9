package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
	"github.com/excel-analyzer-api/internal/storage"
)

// AuthHandler handles signup, login and session endpoints
type AuthHandler struct {
	services *service.Services
	session  *storage.Session
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, session *storage.Session, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		session:  session,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	acct, err := h.services.Auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		h.log.Error().Err(err).Msg("Signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account": acct.View(),
		"message": "account created, please login",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be one of: user, admin, superadmin"})
		return
	}

	acct, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": acct.View()})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("Logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"account": activeAccount(c).View()})
}
