package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recrent-shop/internal/domain"
	"recrent-shop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for admin password hashes
const BcryptCost = 10

var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the username does not exist so both
// failure paths take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recrent-shop-dummy-password"), BcryptCost)

// AuthService defines admin authentication
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *domain.AdminUser, err error)
	Verify(ctx context.Context, token string) (*domain.AdminUser, error)
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)
}

type authService struct {
	users  repository.AdminUserRepository
	tokens *TokenManager
	now    func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(users repository.AdminUserRepository, tokens *TokenManager) AuthService {
	return &authService{users: users, tokens: tokens, now: time.Now}
}

// Login checks the credentials, records the login and issues a token
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.AdminUser, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Verify validates a token and loads the admin it was issued to
func (s *authService) Verify(ctx context.Context, token string) (*domain.AdminUser, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}

	return user, nil
}

// EnsureAdmin creates the admin user, or resets its password when it exists
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return false, fmt.Errorf("failed to reset admin password: %w", err)
		}
		return false, nil
	case errors.Is(err, repository.ErrAdminUserNotFound):
		user := &domain.AdminUser{Username: username, PasswordHash: string(hash)}
		if err := s.users.Create(ctx, user); err != nil {
			return false, fmt.Errorf("failed to create admin user: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to find admin user: %w", err)
	}
}
