package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/metrics"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/policy"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const (
	userExistsDetail         = "User with this email already exists"
	invalidCredentialsDetail = "Incorrect email or password"
	invalidKeyDetail         = "Invalid admin key"
	userNotFoundDetail       = "User was not found"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	SetAdmin(ctx context.Context, id int, isAdmin bool) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo     UserRepository
	creds    *credentials.Service
	tokenTTL time.Duration
	adminKey string
}

func NewUserService(repo UserRepository, creds *credentials.Service, tokenTTL time.Duration, adminKey string) *UserService {
	return &UserService{
		repo:     repo,
		creds:    creds,
		tokenTTL: tokenTTL,
		adminKey: adminKey,
	}
}

// Register creates a regular account.
func (s *UserService) Register(ctx context.Context, email, password string) (types.User, error) {
	return s.create(ctx, email, password, false)
}

// Login checks the password and returns a signed access token. Unknown
// emails and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.InvalidCredentials(invalidCredentialsDetail)
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if !s.creds.Verify(password, user.PasswordHash) {
		return "", apperr.InvalidCredentials(invalidCredentialsDetail)
	}

	token, err := s.creds.IssueToken(user.Email, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *UserService) Current(caller types.User) types.UserProfile {
	return caller.Profile()
}

// CreateAdmin creates an admin account when key matches the configured
// admin key. An unset admin key rejects every request.
func (s *UserService) CreateAdmin(ctx context.Context, email, password, key string) (types.User, error) {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return types.User{}, apperr.InvalidKey(invalidKeyDetail)
	}
	return s.create(ctx, email, password, true)
}

// SeedAdmin creates an admin account without a key check. It backs the
// command line bootstrap.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) (types.User, error) {
	return s.create(ctx, email, password, true)
}

func (s *UserService) List(ctx context.Context) ([]types.UserProfile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	profiles := make([]types.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}

// Promote grants admin rights to the user with the given id.
func (s *UserService) Promote(ctx context.Context, id int, caller types.User) (types.User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return types.User{}, err
	}
	user, err := s.repo.SetAdmin(ctx, id, true)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.NotFound(userNotFoundDetail)
		}
		return types.User{}, fmt.Errorf("promote user: %w", err)
	}
	return user, nil
}

func (s *UserService) create(ctx context.Context, email, password string, isAdmin bool) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, apperr.Conflict(userExistsDetail)
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, fmt.Errorf("check user: %w", err)
	}

	hashed, err := s.creds.Hash(password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, apperr.Conflict(userExistsDetail)
		}
		return types.User{}, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordUserRegistered()
	return user, nil
}
