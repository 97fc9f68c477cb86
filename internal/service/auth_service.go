// internal/service/auth_service.go
package service

import (
	"context"
	"log"

	"github.com/minicrm/campaign-backend/internal/identity"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/repository"
)

type AuthService struct {
	Provider identity.Provider
	UserRepo repository.UserRepositoryInterface
}

// SignIn exchanges the OAuth code and returns the matching user, creating
// one on first sign-in.
func (s *AuthService) SignIn(ctx context.Context, code string) (*model.User, error) {
	profile, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByEmail(profile.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{
		Name:    profile.Name,
		Email:   profile.Email,
		Picture: profile.Picture,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	log.Println("✅ New user saved:", user.Email)
	return user, nil
}
