package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/example/storefront-demo/config"
	domain "github.com/example/storefront-demo/domain/user"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:       "test-secret-key",
		Issuer:          "test-issuer",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestJWTManager_AccessTokenCarriesRole(t *testing.T) {
	manager := NewJWTManager(testAuthConfig())

	token, err := manager.GenerateAccessToken("user-123", "test@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := manager.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("claims.Role = %v, want %v", claims.Role, domain.RoleAdmin)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}
}

func TestJWTManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	manager := NewJWTManager(testAuthConfig())

	access, err := manager.GenerateAccessToken("user-123", "test@example.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-123", "test@example.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := manager.ParseRefresh(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseRefresh(access) error = %v, want ErrInvalidToken", err)
	}
	if _, err := manager.ParseAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseAccess(refresh) error = %v, want ErrInvalidToken", err)
	}
	if _, err := manager.ParseRefresh(refresh); err != nil {
		t.Errorf("ParseRefresh(refresh) error = %v", err)
	}
}

func TestJWTManager_RejectsForeignTokens(t *testing.T) {
	manager := NewJWTManager(testAuthConfig())

	otherSecret := testAuthConfig()
	otherSecret.SecretKey = "another-secret"
	otherIssuer := testAuthConfig()
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token func() string
	}{
		{"empty token", func() string { return "" }},
		{"random string", func() string { return "not.a.valid.token" }},
		{"malformed jwt", func() string { return "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid" }},
		{"wrong secret", func() string {
			tok, _ := NewJWTManager(otherSecret).GenerateAccessToken("u", "u@example.com", domain.RoleCustomer)
			return tok
		}},
		{"wrong issuer", func() string {
			tok, _ := NewJWTManager(otherIssuer).GenerateAccessToken("u", "u@example.com", domain.RoleCustomer)
			return tok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Parse(tt.token()); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTokenTTL = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken("user-123", "test@example.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_AccessTokenSeconds(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTokenTTL = 30 * time.Minute
	if got := NewJWTManager(cfg).AccessTokenSeconds(); got != 1800 {
		t.Errorf("AccessTokenSeconds() = %v, want %v", got, 1800)
	}
}
