package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/security"
)

const testJWTSecret = "unit-test-secret-key-0123456789abcdef"

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           "user-1",
		Name:         "Shop Admin",
		Username:     "admin",
		Role:         domain.UserRoleAdmin,
		PasswordHash: string(hash),
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testJWTSecret, 15)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "admin").Return(storedUser(t, "s3cret"), nil)
		userRepo.On("UpdateLastLogin", ctx, "user-1", mock.AnythingOfType("string")).Return(nil)

		token, user, err := svc.Login(ctx, "admin", "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "admin", user.Username)
		assert.NotNil(t, user.LastLogin)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "Admin", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "admin").Return(storedUser(t, "s3cret"), nil)

		_, _, err := svc.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.NotFoundError("user", "ghost"))

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		// Unknown user and bad password are indistinguishable to the caller.
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("LastLoginFailureIsNotFatal", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "admin").Return(storedUser(t, "s3cret"), nil)
		userRepo.On("UpdateLastLogin", ctx, "user-1", mock.AnythingOfType("string")).Return(assert.AnError)

		token, _, err := svc.Login(ctx, "admin", "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testJWTSecret, 15)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID != "" && u.PasswordHash != "" && u.PasswordHash != "s3cret"
		})).Return(nil)

		created, err := svc.CreateUser(ctx, &domain.User{
			Name:     "Counter Staff",
			Username: "staff1",
			Role:     domain.UserRoleStaff,
		}, "s3cret")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
	})

	t.Run("UnknownRole", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		_, err := svc.CreateUser(ctx, &domain.User{Username: "x", Role: "Owner"}, "pw")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		_, err := svc.CreateUser(ctx, &domain.User{Username: "x", Role: domain.UserRoleStaff}, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
