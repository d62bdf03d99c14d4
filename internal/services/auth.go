package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const (
	invalidTokenDetail = "Could not validate credentials or token is expired"
	unknownUserDetail  = "Could not validate credentials"
)

// AuthService turns bearer tokens into users.
type AuthService struct {
	users UserRepository
	creds *credentials.Service
}

func NewAuthService(users UserRepository, creds *credentials.Service) *AuthService {
	return &AuthService{users: users, creds: creds}
}

// Resolve decodes token and loads the user named by its subject.
func (s *AuthService) Resolve(ctx context.Context, token string) (types.User, error) {
	email, err := s.creds.DecodeToken(token)
	if err != nil {
		return types.User{}, apperr.Unauthenticated(invalidTokenDetail)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.Unauthenticated(unknownUserDetail)
		}
		return types.User{}, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}
