package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
)

// AdminHandler handles the role-elevation workflow and dashboard endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// CreateRequest handles POST /v1/admin-requests
func (h *AdminHandler) CreateRequest(c *gin.Context) {
	acct := activeAccount(c)

	req, err := h.services.Admin.Request(c.Request.Context(), acct)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyPending) {
			c.JSON(http.StatusConflict, gin.H{"error": "admin request already pending"})
			return
		}
		h.log.Error().Err(err).Msg("Admin request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit request"})
		return
	}

	c.JSON(http.StatusCreated, req)
}

// PendingRequests handles GET /v1/superadmin/requests
func (h *AdminHandler) PendingRequests(c *gin.Context) {
	requests := h.services.Admin.Pending()
	if requests == nil {
		requests = []*models.AdminRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Approve handles POST /v1/superadmin/requests/:request_id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	req, err := h.services.Admin.Approve(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		h.decisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Reject handles POST /v1/superadmin/requests/:request_id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	req, err := h.services.Admin.Reject(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		h.decisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *AdminHandler) decisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
	case errors.Is(err, service.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "request already decided"})
	default:
		h.log.Error().Err(err).Msg("Request decision failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request"})
	}
}

// Demote handles POST /v1/superadmin/users/:user_id/demote
func (h *AdminHandler) Demote(c *gin.Context) {
	if err := h.services.Admin.Demote(c.Request.Context(), c.Param("user_id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		h.log.Error().Err(err).Msg("Demote failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to demote account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account demoted"})
}

// AdminStats handles GET /v1/admin/stats
func (h *AdminHandler) AdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Admin.AdminStats())
}

// SuperAdminStats handles GET /v1/superadmin/stats
func (h *AdminHandler) SuperAdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Admin.SuperAdminStats())
}

// RegularUsers handles GET /v1/admin/users
func (h *AdminHandler) RegularUsers(c *gin.Context) {
	users := h.services.Admin.RegularUsers()
	if users == nil {
		users = []service.UserSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ManagedUsers handles GET /v1/superadmin/users
func (h *AdminHandler) ManagedUsers(c *gin.Context) {
	users := h.services.Admin.ManagedUsers()
	if users == nil {
		users = []service.UserSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Activity handles GET /v1/superadmin/activity
func (h *AdminHandler) Activity(c *gin.Context) {
	activity := h.services.Admin.Activity()
	if activity == nil {
		activity = []service.ActivityEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
