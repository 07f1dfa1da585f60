package service

import (
	"context"
	"errors"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

// ProfileService defines the user profile operations
type ProfileService interface {
	// GetProfile returns the saved profile, or an empty one if none exists
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	// SaveProfile creates the profile or overwrites only the supplied fields
	SaveProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return &domain.UserProfile{}, nil
	}
	return profile, err
}

func (s *profileService) SaveProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error {
	return s.profileRepo.Upsert(ctx, userID, update.Columns())
}
