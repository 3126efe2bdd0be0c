// Package services contains the application services behind the HTTP layer.
// Services own domain rules; repositories own SQL; handlers own transport.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
	"github.com/dkowalski/quoteshelf/internal/server/config"
	"github.com/dkowalski/quoteshelf/internal/server/models"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/users"
)

// AuthResult is what a successful registration or login hands back: the
// signed credential plus the identity it asserts.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService implements registration and login.
type UserService struct {
	repo          users.Repository
	secretKey     []byte
	tokenLifetime time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:          repo,
		secretKey:     []byte(cfg.SecretKey),
		tokenLifetime: cfg.TokenLifetime,
	}
}

// Register creates a new identity and issues its first credential.
// A duplicate email is reported as common.ErrConflict and never creates a row.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing error: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return s.issue(user)
}

// Login verifies the password and issues a credential. An unknown email and
// a wrong password fail identically: the caller only ever sees
// common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.Issue(user.ID, user.Email, s.secretKey, s.tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("token issue error: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
