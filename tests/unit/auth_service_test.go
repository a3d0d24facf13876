package unit

import (
	"context"
	"testing"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/security"
	"agroshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret-0123456789abcdef-xyz"

func newAuthFixture() (*MockUserRepo, security.TokenManager, service.AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager(testJWTSecret, time.Hour)
	return userRepo, tokens, service.NewAuthService(userRepo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user with hashed password and token", func(t *testing.T) {
		userRepo, tokens, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "a@x.io").Return(nil, repository.ErrNotFound)

		var stored *domain.User
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User) }).
			Return(nil)

		user, token, err := svc.Signup(ctx, "a@x.io", "hunter22", "Asha", domain.UserRoleRenter)
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "hunter22", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "renter", claims.Role)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "a@x.io").Return(&domain.User{ID: "u1"}, nil)

		_, _, err := svc.Signup(ctx, "a@x.io", "pw", "Asha", domain.UserRoleRenter)
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("Unknown role", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, _, err := svc.Signup(ctx, "a@x.io", "pw", "Asha", domain.UserRole("admin"))
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	user := &domain.User{ID: "u1", Email: "a@x.io", Role: domain.UserRoleSeller, PasswordHash: string(hash)}

	t.Run("Valid credentials", func(t *testing.T) {
		userRepo, tokens, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "a@x.io").Return(user, nil)

		got, token, err := svc.Login(ctx, "a@x.io", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "seller", claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "a@x.io").Return(user, nil)

		_, _, err := svc.Login(ctx, "a@x.io", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown email maps to the same error", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "nobody@x.io").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@x.io", "pw")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
