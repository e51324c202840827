package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
)

type ProfileService interface {
	// Create stores the caller's own profile. A payload naming another user is refused.
	Create(ctx context.Context, callerID uuid.UUID, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type profileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Create(ctx context.Context, callerID uuid.UUID, profile *models.Profile) (*models.Profile, error) {
	if profile.UserID == uuid.Nil {
		profile.UserID = callerID
	}
	if profile.UserID != callerID {
		return nil, fmt.Errorf("%w: profiles can only be created for yourself", ErrForbiddenOperation)
	}
	profile.FullName = trimmedOrNil(profile.FullName)
	profile.PhoneNumber = trimmedOrNil(profile.PhoneNumber)
	profile.CreatedAt = nil

	if err := s.repo.Create(ctx, profile); err != nil {
		switch {
		case errors.Is(err, repositories.ErrProfileConflict):
			return nil, ErrProfileConflict
		case errors.Is(err, repositories.ErrProfileNoUser):
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
