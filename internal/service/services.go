package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/chart"
	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/storage"
)

// AuthService defines the interface for credential checks and signup.
type AuthService interface {
	Login(ctx context.Context, email, password string, role models.Role) (*models.Account, error)
	Signup(ctx context.Context, name, email, password string) (*models.Account, error)
	Logout(ctx context.Context) error
}

// UploadService defines the interface for upload intake and listings.
type UploadService interface {
	Ingest(ctx context.Context, accountID, fileName string, r io.Reader) (*UploadResult, error)
	History(accountID string) []*models.UploadRecord
	Recent(limit int) []models.UploadEntry
	Current() *models.Dataset
}

// ChartService defines the interface for building chart series from the
// active dataset.
type ChartService interface {
	BuildFromCurrent(categoryColumn, valueColumn string, kind chart.Kind) (*chart.Series, error)
}

// AdminService defines the interface for the role-elevation workflow and
// the admin dashboards.
type AdminService interface {
	Request(ctx context.Context, acct *models.Account) (*models.AdminRequest, error)
	Approve(ctx context.Context, requestID string) (*models.AdminRequest, error)
	Reject(ctx context.Context, requestID string) (*models.AdminRequest, error)
	Demote(ctx context.Context, accountID string) error
	Pending() []*models.AdminRequest
	AdminStats() AdminStats
	SuperAdminStats() SuperAdminStats
	RegularUsers() []UserSummary
	ManagedUsers() []UserSummary
	Activity() []ActivityEntry
}

// UploadResult is what intake hands back to the caller: the persisted
// record plus the column set and a short preview of the decoded rows.
type UploadResult struct {
	Record  *models.UploadRecord `json:"record"`
	Columns []string             `json:"columns"`
	Preview []models.Row         `json:"preview"`
}

// AdminStats feeds the admin dashboard counters.
type AdminStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalUploads int `json:"totalUploads"`
	ActiveUsers  int `json:"activeUsers"`
}

// SuperAdminStats feeds the super-admin dashboard counters.
type SuperAdminStats struct {
	TotalAdmins     int `json:"totalAdmins"`
	PendingRequests int `json:"pendingRequests"`
}

// UserSummary is an account joined with its upload count for the user
// management tables.
type UserSummary struct {
	models.AccountView
	Uploads int `json:"uploads"`
}

// ActivityEntry is one line of the system activity feed.
type ActivityEntry struct {
	Type    string    `json:"type"` // "upload" or "admin_request"
	User    string    `json:"user"`
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
}

// Services holds all service interfaces.
type Services struct {
	Auth   AuthService
	Upload UploadService
	Chart  ChartService
	Admin  AdminService
}

// NewServices creates all services over the shared record store and
// session manager.
func NewServices(records *storage.Records, session *storage.Session, cfg *config.Config, log zerolog.Logger) *Services {
	uploadSvc := newUploadService(records, cfg, log)

	return &Services{
		Auth:   newAuthService(records, session, log),
		Upload: uploadSvc,
		Chart:  newChartService(uploadSvc, log),
		Admin:  newAdminService(records, log),
	}
}
