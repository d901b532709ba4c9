package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/decoder"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/storage"
)

// uploadService is the concrete implementation of UploadService. It owns
// the transient dataset of the active upload; only the summary metadata is
// persisted.
type uploadService struct {
	records *storage.Records
	cfg     *config.Config
	log     zerolog.Logger

	mu      sync.Mutex
	current *models.Dataset
}

// newUploadService creates a new UploadService.
func newUploadService(records *storage.Records, cfg *config.Config, log zerolog.Logger) *uploadService {
	return &uploadService{
		records: records,
		cfg:     cfg,
		log:     log.With().Str("service", "upload").Logger(),
	}
}

// Ingest decodes the uploaded bytes, retains the dataset as the active
// one, records the upload metadata and returns the record together with
// the column set and a row preview.
func (s *uploadService) Ingest(ctx context.Context, accountID, fileName string, r io.Reader) (*UploadResult, error) {
	ds, err := decoder.Decode(r, fileName)
	if err != nil {
		s.log.Warn().Err(err).Str("file", fileName).Msg("Decode failed")
		return nil, fmt.Errorf("failed to decode %s: %w", fileName, err)
	}

	record := &models.UploadRecord{
		ID:         uuid.New().String(),
		UserID:     accountID,
		FileName:   fileName,
		UploadDate: time.Now(),
		RowCount:   len(ds.Rows),
	}

	if err := s.records.AddUpload(ctx, record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	s.log.Info().
		Str("upload_id", record.ID).
		Str("file", fileName).
		Int("rows", record.RowCount).
		Int("columns", len(ds.Columns)).
		Msg("Upload recorded")

	return &UploadResult{
		Record:  record,
		Columns: ds.Columns,
		Preview: ds.Preview(s.cfg.Upload.PreviewRows),
	}, nil
}

// History returns the account's uploads in insertion order.
func (s *uploadService) History(accountID string) []*models.UploadRecord {
	return s.records.UploadsByUser(accountID)
}

// Recent returns the last uploads across all accounts, newest first,
// joined with uploader names for the monitoring table.
func (s *uploadService) Recent(limit int) []models.UploadEntry {
	uploads := s.records.Uploads()
	if limit > 0 && len(uploads) > limit {
		uploads = uploads[len(uploads)-limit:]
	}

	entries := make([]models.UploadEntry, 0, len(uploads))
	for i := len(uploads) - 1; i >= 0; i-- {
		u := uploads[i]
		name := "Unknown"
		if acct := s.records.AccountByID(u.UserID); acct != nil {
			name = acct.Name
		}
		entries = append(entries, models.UploadEntry{UploadRecord: *u, UserName: name})
	}
	return entries
}

// Current returns the active dataset, or nil when nothing was uploaded.
func (s *uploadService) Current() *models.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
