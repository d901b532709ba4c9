package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
)

func TestAuthService_LoginExactMatchOnly(t *testing.T) {
	svcs, records, _ := newTestServices(t)
	addAccount(t, records, "a1", "Jo", "jo@test.com", "secret", models.RoleUser)
	addAccount(t, records, "a2", "Admin", "admin@test.com", "secret", models.RoleAdmin)

	tests := []struct {
		name     string
		email    string
		password string
		role     models.Role
		wantID   string
	}{
		{"exact user match", "jo@test.com", "secret", models.RoleUser, "a1"},
		{"exact admin match", "admin@test.com", "secret", models.RoleAdmin, "a2"},
		{"wrong password", "jo@test.com", "wrong", models.RoleUser, ""},
		{"wrong role", "jo@test.com", "secret", models.RoleAdmin, ""},
		{"unknown email", "nobody@test.com", "secret", models.RoleUser, ""},
		{"case-sensitive email", "Jo@test.com", "secret", models.RoleUser, ""},
		{"case-sensitive password", "jo@test.com", "Secret", models.RoleUser, ""},
		{"empty credentials", "", "", models.RoleUser, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := svcs.Auth.Login(context.Background(), tt.email, tt.password, tt.role)
			if tt.wantID == "" {
				if !errors.Is(err, service.ErrInvalidCredentials) {
					t.Errorf("Expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if acct.ID != tt.wantID {
				t.Errorf("Expected account %s, got %s", tt.wantID, acct.ID)
			}
		})
	}
}

func TestAuthService_LoginSetsActiveSession(t *testing.T) {
	svcs, records, session := newTestServices(t)
	addAccount(t, records, "a1", "Jo", "jo@test.com", "secret", models.RoleUser)

	if _, err := svcs.Auth.Login(context.Background(), "jo@test.com", "secret", models.RoleUser); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if active := session.Active(); active == nil || active.ID != "a1" {
		t.Errorf("Expected active session for a1, got %+v", active)
	}
}

func TestAuthService_LoginFailureLeavesSessionAlone(t *testing.T) {
	svcs, records, session := newTestServices(t)
	addAccount(t, records, "a1", "Jo", "jo@test.com", "secret", models.RoleUser)

	svcs.Auth.Login(context.Background(), "jo@test.com", "wrong", models.RoleUser)
	if session.Active() != nil {
		t.Error("Failed login should not create a session")
	}
}

func TestAuthService_Signup(t *testing.T) {
	svcs, records, _ := newTestServices(t)

	acct, err := svcs.Auth.Signup(context.Background(), "Jo", "jo@test.com", "secret")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if acct.Role != models.RoleUser {
		t.Errorf("Expected role user, got %s", acct.Role)
	}
	if acct.ID == "" {
		t.Error("Expected a generated identifier")
	}
	if acct.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	if records.AccountByEmail("jo@test.com") == nil {
		t.Error("Expected account to be persisted")
	}
}

func TestAuthService_SignupDuplicateEmailAnyRole(t *testing.T) {
	svcs, records, _ := newTestServices(t)
	addAccount(t, records, "a1", "Admin", "taken@test.com", "pw", models.RoleAdmin)

	before := len(records.Accounts())
	_, err := svcs.Auth.Signup(context.Background(), "Jo", "taken@test.com", "other")
	if !errors.Is(err, service.ErrDuplicateEmail) {
		t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
	}
	if len(records.Accounts()) != before {
		t.Error("Duplicate signup must not mutate the accounts collection")
	}
}

func TestAuthService_LogoutClearsSession(t *testing.T) {
	svcs, records, session := newTestServices(t)
	addAccount(t, records, "a1", "Jo", "jo@test.com", "secret", models.RoleUser)

	svcs.Auth.Login(context.Background(), "jo@test.com", "secret", models.RoleUser)
	if err := svcs.Auth.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if session.Active() != nil {
		t.Error("Expected no active session after logout")
	}
}
