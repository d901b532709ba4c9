package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
	"github.com/excel-analyzer-api/internal/storage"
)

// UploadHandler handles spreadsheet upload endpoints
type UploadHandler struct {
	services *service.Services
	session  *storage.Session
	cfg      *config.Config
	log      zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, session *storage.Session, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		session:  session,
		cfg:      cfg,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

// Create handles POST /v1/uploads
// Accepts a multipart file upload, decodes it and records the upload.
func (h *UploadHandler) Create(c *gin.Context) {
	acct := activeAccount(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Upload.MaxUploadSize/(1024*1024)),
		})
		return
	}

	result, err := h.services.Upload.Ingest(c.Request.Context(), acct.ID, header.Filename, file)
	if err != nil {
		// Decode faults are opaque external failures; keep the message generic.
		h.log.Warn().Err(err).Str("file", header.Filename).Msg("Upload rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to process file"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// History handles GET /v1/uploads
// Returns the authenticated account's upload history.
func (h *UploadHandler) History(c *gin.Context) {
	acct := activeAccount(c)

	uploads := h.services.Upload.History(acct.ID)
	if uploads == nil {
		uploads = []*models.UploadRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

// Recent handles GET /v1/admin/uploads
// Returns the latest uploads across all accounts, newest first.
func (h *UploadHandler) Recent(c *gin.Context) {
	entries := h.services.Upload.Recent(h.cfg.Upload.RecentLimit)
	if entries == nil {
		entries = []models.UploadEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"uploads": entries})
}
