package auth

import (
	"context"
	"testing"

	"github.com/example/storefront-demo/database"
	domain "github.com/example/storefront-demo/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewAuthService(NewUserRepository(db), NewPasswordHasherWithCost(bcrypt.MinCost), NewJWTManager(testAuthConfig()))
}

func TestRegisterCreatesCustomer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, " Shopper@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", u.Email)
	assert.Equal(t, domain.RoleCustomer, u.Role)

	_, err = svc.Register(ctx, "shopper@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"bad email", "not-an-email", "password123", ErrInvalidEmail},
		{"short password", "a@example.com", "1234567", ErrWeakPassword},
		{"long password", "a@example.com", string(make([]byte, 73)), ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoginValidateAndRefresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "shopper@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "shopper@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := svc.Login(ctx, "shopper@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)

	claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)

	_, err = svc.ValidateToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refreshed, err := svc.RefreshTokens(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshTokens(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEnsureAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	none, err := svc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, none)

	admin, err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	tokens, err := svc.Login(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestEnsureAdminPromotesExistingUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "owner@example.com", "password123")
	require.NoError(t, err)

	promoted, err := svc.EnsureAdmin(ctx, "owner@example.com", "ignored-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, promoted.ID)

	stored, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestGetUserNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
