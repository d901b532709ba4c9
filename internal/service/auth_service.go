package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/storage"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	records *storage.Records
	session *storage.Session
	log     zerolog.Logger
}

// newAuthService creates a new AuthService.
func newAuthService(records *storage.Records, session *storage.Session, log zerolog.Logger) *authService {
	return &authService{
		records: records,
		session: session,
		log:     log.With().Str("service", "auth").Logger(),
	}
}

// matchCredentials is the single place credentials are compared. Stored
// passwords are plaintext for compatibility with existing blobs; swapping
// in a hashed scheme only touches this function.
func matchCredentials(a *models.Account, email, password string, role models.Role) bool {
	return a.Email == email && a.Password == password && a.Role == role
}

// Login returns the account whose email, password and role all match
// exactly, sets it as the active session and returns it. Any other input
// yields ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string, role models.Role) (*models.Account, error) {
	for _, a := range s.records.Accounts() {
		if !matchCredentials(a, email, password, role) {
			continue
		}
		if err := s.session.SetActive(ctx, a); err != nil {
			return nil, err
		}
		s.log.Info().Str("account_id", a.ID).Str("role", string(role)).Msg("Login succeeded")
		return a, nil
	}

	s.log.Warn().Str("email", email).Str("role", string(role)).Msg("Login failed")
	return nil, ErrInvalidCredentials
}

// Signup creates a new role=user account. Any existing account with the
// same email, regardless of role, yields ErrDuplicateEmail and no
// mutation.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*models.Account, error) {
	if s.records.AccountByEmail(email) != nil {
		return nil, ErrDuplicateEmail
	}

	acct := &models.Account{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.records.AddAccount(ctx, acct); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", acct.ID).Msg("Account created")
	return acct, nil
}

// Logout clears the active session.
func (s *authService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}
