package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
)

// Blob keys. The names and value shapes are fixed; stored data carries no
// version marker.
const (
	keyAccounts = "accounts"
	keyUploads  = "uploads"
	keyRequests = "adminRequests"
	keySession  = "currentUser"
)

// Records owns the three durable collections. All reads are served from
// memory; every mutation rewrites the affected collection's blob in full.
// A corrupt blob resets its collection to empty rather than failing.
type Records struct {
	blobs BlobStore
	log   zerolog.Logger

	mu       sync.Mutex
	accounts []*models.Account
	uploads  []*models.UploadRecord
	requests []*models.AdminRequest
}

// NewRecords creates a Records store over the given blob store.
func NewRecords(blobs BlobStore, log zerolog.Logger) *Records {
	return &Records{
		blobs: blobs,
		log:   log.With().Str("component", "records").Logger(),
	}
}

// Load reads the three collections. An absent blob yields an empty
// collection. A blob that fails to decode also yields an empty collection,
// with a warning; decode corruption never propagates to the caller.
// Storage I/O errors do propagate.
func (r *Records) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := loadCollection(ctx, r.blobs, r.log, keyAccounts, &r.accounts); err != nil {
		return err
	}
	if err := loadCollection(ctx, r.blobs, r.log, keyUploads, &r.uploads); err != nil {
		return err
	}
	if err := loadCollection(ctx, r.blobs, r.log, keyRequests, &r.requests); err != nil {
		return err
	}

	r.log.Info().
		Int("accounts", len(r.accounts)).
		Int("uploads", len(r.uploads)).
		Int("requests", len(r.requests)).
		Msg("Record collections loaded")

	return nil
}

func loadCollection[T any](ctx context.Context, blobs BlobStore, log zerolog.Logger, key string, dst *[]*T) error {
	*dst = nil

	data, err := blobs.Get(ctx, key)
	if errors.Is(err, ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// Fail soft: corrupt stored data is discarded, not surfaced.
		log.Warn().Err(err).Str("collection", key).Msg("Corrupt collection blob, resetting to empty")
		*dst = nil
	}
	return nil
}

// EnsureSuperAdmin seeds the given account when no account holds the
// superadmin role, and persists. Idempotent.
func (r *Records) EnsureSuperAdmin(ctx context.Context, seed models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Role == models.RoleSuperAdmin {
			return nil
		}
	}

	seed.Role = models.RoleSuperAdmin
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now()
	}
	r.accounts = append(r.accounts, &seed)

	r.log.Info().Str("email", seed.Email).Msg("Seeded super admin account")
	return r.saveAccounts(ctx)
}

// saveAccounts serializes the full accounts collection. Callers hold r.mu.
func (r *Records) saveAccounts(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, keyAccounts, r.accounts)
}

func (r *Records) saveUploads(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, keyUploads, r.uploads)
}

func (r *Records) saveRequests(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, keyRequests, r.requests)
}

func saveCollection[T any](ctx context.Context, blobs BlobStore, key string, items []*T) error {
	if items == nil {
		items = []*T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return blobs.Set(ctx, key, data)
}

// Account queries. Lookups are linear scans; the collections stay small.

// AccountByID returns the account with the given id, or nil.
func (r *Records) AccountByID(id string) *models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// AccountByEmail returns the first account with the given email, any role,
// or nil. Comparison is exact and case-sensitive.
func (r *Records) AccountByEmail(email string) *models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

// Accounts returns a snapshot of the accounts collection.
func (r *Records) Accounts() []*models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// AddAccount appends an account and persists the collection.
func (r *Records) AddAccount(ctx context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, a)
	return r.saveAccounts(ctx)
}

// SetAccountRole updates an account's role and persists. Returns false
// without persisting when no such account exists.
func (r *Records) SetAccountRole(ctx context.Context, id string, role models.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			a.Role = role
			return true, r.saveAccounts(ctx)
		}
	}
	return false, nil
}

// Upload queries.

// Uploads returns a snapshot of the uploads collection, in insertion order.
func (r *Records) Uploads() []*models.UploadRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.UploadRecord, len(r.uploads))
	copy(out, r.uploads)
	return out
}

// UploadsByUser returns the given account's uploads, in insertion order.
func (r *Records) UploadsByUser(userID string) []*models.UploadRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.UploadRecord
	for _, u := range r.uploads {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out
}

// AddUpload appends an upload record and persists the collection.
func (r *Records) AddUpload(ctx context.Context, u *models.UploadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, u)
	return r.saveUploads(ctx)
}

// Admin request queries.

// Requests returns a snapshot of the admin requests collection.
func (r *Records) Requests() []*models.AdminRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AdminRequest, len(r.requests))
	copy(out, r.requests)
	return out
}

// RequestByID returns the request with the given id, or nil.
func (r *Records) RequestByID(id string) *models.AdminRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req
		}
	}
	return nil
}

// PendingRequestByUser returns the user's pending request, or nil.
func (r *Records) PendingRequestByUser(userID string) *models.AdminRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.UserID == userID && req.Status == models.RequestPending {
			return req
		}
	}
	return nil
}

// AddRequest appends an admin request and persists the collection.
func (r *Records) AddRequest(ctx context.Context, req *models.AdminRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return r.saveRequests(ctx)
}

// SetRequestStatus moves a request to a terminal status, stamps the
// matching timestamp and persists. Returns false when no such request
// exists.
func (r *Records) SetRequestStatus(ctx context.Context, id string, status models.RequestStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID != id {
			continue
		}
		req.Status = status
		switch status {
		case models.RequestApproved:
			req.ApprovedDate = &at
		case models.RequestRejected:
			req.RejectedDate = &at
		}
		return true, r.saveRequests(ctx)
	}
	return false, nil
}
