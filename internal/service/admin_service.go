package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/storage"
)

// Activity feed sizing, matching the dashboard tables it fills.
const (
	activityUploads  = 10
	activityRequests = 5
	activityLimit    = 15
)

// adminService is the concrete implementation of AdminService.
type adminService struct {
	records *storage.Records
	log     zerolog.Logger
}

// newAdminService creates a new AdminService.
func newAdminService(records *storage.Records, log zerolog.Logger) *adminService {
	return &adminService{
		records: records,
		log:     log.With().Str("service", "admin").Logger(),
	}
}

// Request creates a pending role-elevation request for the account, with
// name and email denormalized at request time. A still-pending earlier
// request yields ErrAlreadyPending; a terminal one permits a new request.
func (s *adminService) Request(ctx context.Context, acct *models.Account) (*models.AdminRequest, error) {
	if s.records.PendingRequestByUser(acct.ID) != nil {
		return nil, ErrAlreadyPending
	}

	req := &models.AdminRequest{
		ID:          uuid.New().String(),
		UserID:      acct.ID,
		UserName:    acct.Name,
		UserEmail:   acct.Email,
		RequestDate: time.Now(),
		Status:      models.RequestPending,
	}

	if err := s.records.AddRequest(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", req.ID).Str("account_id", acct.ID).Msg("Admin request submitted")
	return req, nil
}

// Approve moves a pending request to approved and elevates the requesting
// account to admin. When the account no longer exists the role change is
// skipped but the request still transitions. Non-pending requests yield
// ErrNotPending.
func (s *adminService) Approve(ctx context.Context, requestID string) (*models.AdminRequest, error) {
	req := s.records.RequestByID(requestID)
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != models.RequestPending {
		return nil, ErrNotPending
	}

	found, err := s.records.SetAccountRole(ctx, req.UserID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.Warn().Str("request_id", requestID).Str("account_id", req.UserID).
			Msg("Requesting account no longer exists, skipping role change")
	}

	if _, err := s.records.SetRequestStatus(ctx, requestID, models.RequestApproved, time.Now()); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", requestID).Str("account_id", req.UserID).Msg("Admin request approved")
	return req, nil
}

// Reject moves a pending request to rejected. Non-pending requests yield
// ErrNotPending.
func (s *adminService) Reject(ctx context.Context, requestID string) (*models.AdminRequest, error) {
	req := s.records.RequestByID(requestID)
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != models.RequestPending {
		return nil, ErrNotPending
	}

	if _, err := s.records.SetRequestStatus(ctx, requestID, models.RequestRejected, time.Now()); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", requestID).Msg("Admin request rejected")
	return req, nil
}

// Demote sets the account's role back to user. There is no guard that the
// target currently holds the admin role.
func (s *adminService) Demote(ctx context.Context, accountID string) error {
	found, err := s.records.SetAccountRole(ctx, accountID, models.RoleUser)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("account_id", accountID).Msg("Account demoted to user")
	return nil
}

// Pending returns the requests still awaiting a decision.
func (s *adminService) Pending() []*models.AdminRequest {
	var out []*models.AdminRequest
	for _, req := range s.records.Requests() {
		if req.Status == models.RequestPending {
			out = append(out, req)
		}
	}
	return out
}

// AdminStats computes the admin dashboard counters.
func (s *adminService) AdminStats() AdminStats {
	var stats AdminStats
	for _, a := range s.records.Accounts() {
		if a.Role == models.RoleUser {
			stats.TotalUsers++
		}
		if a.Role != models.RoleSuperAdmin {
			stats.ActiveUsers++
		}
	}
	stats.TotalUploads = len(s.records.Uploads())
	return stats
}

// SuperAdminStats computes the super-admin dashboard counters.
func (s *adminService) SuperAdminStats() SuperAdminStats {
	var stats SuperAdminStats
	for _, a := range s.records.Accounts() {
		if a.Role == models.RoleAdmin {
			stats.TotalAdmins++
		}
	}
	stats.PendingRequests = len(s.Pending())
	return stats
}

// RegularUsers lists role=user accounts with their upload counts.
func (s *adminService) RegularUsers() []UserSummary {
	return s.summaries(func(a *models.Account) bool { return a.Role == models.RoleUser })
}

// ManagedUsers lists all non-superadmin accounts with their upload counts.
func (s *adminService) ManagedUsers() []UserSummary {
	return s.summaries(func(a *models.Account) bool { return a.Role != models.RoleSuperAdmin })
}

func (s *adminService) summaries(keep func(*models.Account) bool) []UserSummary {
	counts := make(map[string]int)
	for _, u := range s.records.Uploads() {
		counts[u.UserID]++
	}

	var out []UserSummary
	for _, a := range s.records.Accounts() {
		if keep(a) {
			out = append(out, UserSummary{AccountView: a.View(), Uploads: counts[a.ID]})
		}
	}
	return out
}

// Activity merges the most recent uploads and admin requests into one
// feed, newest first.
func (s *adminService) Activity() []ActivityEntry {
	uploads := s.records.Uploads()
	if len(uploads) > activityUploads {
		uploads = uploads[len(uploads)-activityUploads:]
	}
	requests := s.records.Requests()
	if len(requests) > activityRequests {
		requests = requests[len(requests)-activityRequests:]
	}

	entries := make([]ActivityEntry, 0, len(uploads)+len(requests))
	for _, u := range uploads {
		name := "Unknown"
		if acct := s.records.AccountByID(u.UserID); acct != nil {
			name = acct.Name
		}
		entries = append(entries, ActivityEntry{
			Type:    "upload",
			User:    name,
			Date:    u.UploadDate,
			Details: fmt.Sprintf("Uploaded %s", u.FileName),
		})
	}
	for _, req := range requests {
		entries = append(entries, ActivityEntry{
			Type:    "admin_request",
			User:    req.UserName,
			Date:    req.RequestDate,
			Details: fmt.Sprintf("Requested admin role - Status: %s", req.Status),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > activityLimit {
		entries = entries[:activityLimit]
	}
	return entries
}
