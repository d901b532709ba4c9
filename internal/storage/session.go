package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
)

// Session holds the single authenticated identity. The in-memory reference
// is mirrored to the blob store so it survives restarts; an absent blob
// means logged out. One active identity at a time is assumed.
type Session struct {
	blobs BlobStore
	log   zerolog.Logger

	mu     sync.Mutex
	active *models.Account
}

// NewSession creates a SessionManager over the given blob store.
func NewSession(blobs BlobStore, log zerolog.Logger) *Session {
	return &Session{
		blobs: blobs,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// Restore reads the persisted session. Absent or unparseable blobs both
// resolve to logged-out; Restore never fails on bad data.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil

	data, err := s.blobs.Get(ctx, keySession)
	if errors.Is(err, ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var acct models.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		s.log.Warn().Err(err).Msg("Corrupt session blob, treating as logged out")
		return nil
	}

	s.active = &acct
	s.log.Info().Str("account_id", acct.ID).Str("role", string(acct.Role)).Msg("Session restored")
	return nil
}

// SetActive stores the account as the active identity and persists a copy.
func (s *Session) SetActive(ctx context.Context, acct *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = acct

	data, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, keySession, data)
}

// Clear drops the in-memory reference and deletes the persisted copy.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	return s.blobs.Delete(ctx, keySession)
}

// Active returns the authenticated account, or nil when logged out.
func (s *Session) Active() *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
