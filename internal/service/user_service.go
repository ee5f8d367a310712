package service

import (
	"context"
	"strings"

	"artshare/internal/apperr"
	"artshare/internal/domain"
	"artshare/internal/repo"
	"artshare/pkg/utils"
)

// UserService covers registration, stateless credential verification and
// profile maintenance. There is no session or token layer: callers carry
// their own id between requests.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates an account. The email pre-check is an optimization only;
// the unique index is the authoritative conflict signal under concurrency.
func (s *UserService) Register(ctx context.Context, email, password, nickname string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || password == "" || nickname == "" {
		return nil, apperr.BadRequest("email, password and nickname are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("register failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Nickname:     nickname,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("register failed", err)
	}
	return u, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.BadRequest("email and password are required")
	}
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperr.Internal("login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return u, nil
}

// UpdateProfile overwrites nickname (trimmed) and signature (nullable).
func (s *UserService) UpdateProfile(ctx context.Context, id uint, nickname string, signature *string) (*domain.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, apperr.BadRequest("nickname must not be empty")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("update profile failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	u.Nickname = nickname
	u.Signature = signature
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperr.Internal("update profile failed", err)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("get user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}
