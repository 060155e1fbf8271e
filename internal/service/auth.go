package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/logger"
	"rentalpro-backend/internal/repository"
	"rentalpro-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLogin = &now

	logger.Info("User logged in", "username", user.Username, "role", user.Role)
	return token, user, nil
}

func (s *authService) CreateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error) {
	if u.Username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrValidation)
	}
	switch u.Role {
	case domain.UserRoleAdmin, domain.UserRoleManager, domain.UserRoleStaff:
	default:
		return nil, fmt.Errorf("unknown role %q: %w", u.Role, domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Info("User created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
