package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/carebridge/hms/internal/config"
	"github.com/carebridge/hms/internal/domain"
	"github.com/google/uuid"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "hms-test",
	}
}

func testClaims() *domain.Claims {
	doctorID := uuid.New()
	return &domain.Claims{
		UserID:   uuid.New(),
		Email:    "doc@example.com",
		Role:     domain.RoleDoctor,
		DoctorID: &doctorID,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	claims := testClaims()

	pair, err := m.GenerateTokenPair(claims)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}

	got, err := m.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error: %v", err)
	}

	if got.UserID != claims.UserID {
		t.Errorf("UserID = %v, want %v", got.UserID, claims.UserID)
	}
	if got.Role != domain.RoleDoctor {
		t.Errorf("Role = %v, want DOCTOR", got.Role)
	}
	if got.DoctorID == nil || *got.DoctorID != *claims.DoctorID {
		t.Error("DoctorID should survive the round trip")
	}
	if got.PatientID != nil {
		t.Error("PatientID should stay unset")
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	m := NewJWTManager(testConfig())

	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("refresh as access: error = %v, want ErrTokenTypeMismatch", err)
	}
	if _, err := m.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("access as refresh: error = %v, want ErrTokenTypeMismatch", err)
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	m := NewJWTManager(cfg)

	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}

	other := testConfig()
	other.Secret = "another-secret-another-secret-12345"
	if _, err := NewJWTManager(other).ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestWrongIssuer(t *testing.T) {
	issuing := testConfig()
	issuing.Issuer = "someone-else"
	pair, err := NewJWTManager(issuing).GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}

	if _, err := NewJWTManager(testConfig()).ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}
