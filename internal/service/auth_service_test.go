package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carebridge/hms/internal/config"
	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "hms-test",
	})
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		Role:         role,
		IsActive:     active,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "admin@example.com", "letmein-123", domain.RoleAdmin, true)
	svc := NewAuthService(users, testJWTManager(), zap.NewNop())

	pair, err := svc.Login(context.Background(), "admin@example.com", "letmein-123", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", pair.TokenType)
	}
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "admin@example.com", "letmein-123", domain.RoleAdmin, true)
	seedUser(t, users, "pending@example.com", "letmein-123", domain.RoleDoctor, false)
	seedUser(t, users, "disabled@example.com", "letmein-123", domain.RolePatient, false)
	svc := NewAuthService(users, testJWTManager(), zap.NewNop())

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "nobody@example.com", "letmein-123", ErrInvalidCredentials},
		{"wrong password", "admin@example.com", "wrong", ErrInvalidCredentials},
		{"pending doctor", "pending@example.com", "letmein-123", ErrApprovalPending},
		{"inactive account", "disabled@example.com", "letmein-123", ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password, "127.0.0.1")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	users := newFakeUserRepo()
	u := seedUser(t, users, "admin@example.com", "letmein-123", domain.RoleAdmin, true)
	svc := NewAuthService(users, testJWTManager(), zap.NewNop())

	pair, err := svc.Login(context.Background(), "admin@example.com", "letmein-123", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("expected a new access token")
	}

	// An access token is not accepted as a refresh token.
	if _, err := svc.RefreshToken(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access token as refresh: error = %v, want ErrInvalidCredentials", err)
	}

	// Deactivating the account kills the refresh token immediately.
	if err := users.SetActive(context.Background(), u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("deactivated refresh: error = %v, want ErrInvalidCredentials", err)
	}
}
