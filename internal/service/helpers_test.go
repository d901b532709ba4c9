package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/mocks"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
	"github.com/excel-analyzer-api/internal/storage"
)

func newTestServices(t *testing.T) (*service.Services, *storage.Records, *storage.Session) {
	t.Helper()

	blobs := mocks.NewMockBlobStore()
	records := storage.NewRecords(blobs, zerolog.Nop())
	if err := records.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	session := storage.NewSession(blobs, zerolog.Nop())

	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxUploadSize: 1 << 20,
			PreviewRows:   10,
			RecentLimit:   20,
		},
	}

	return service.NewServices(records, session, cfg, zerolog.Nop()), records, session
}

func addAccount(t *testing.T, records *storage.Records, id, name, email, password string, role models.Role) *models.Account {
	t.Helper()
	acct := &models.Account{ID: id, Name: name, Email: email, Password: password, Role: role}
	if err := records.AddAccount(context.Background(), acct); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	return acct
}
