package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/realtime"
	"github.com/utdisa/isa-portal/repositories"
)

// Broadcaster pushes realtime messages to subscribed clients.
type Broadcaster interface {
	BroadcastToRoom(room string, message any)
}

type HousingService interface {
	List(ctx context.Context, dir repositories.SortDirection) ([]models.HousingListing, error)
	Get(ctx context.Context, id uuid.UUID) (*models.HousingListing, error)
	// Create stores the listing with ownerID as its owner, whatever the payload says.
	Create(ctx context.Context, ownerID uuid.UUID, listing *models.HousingListing) (*models.HousingListing, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type housingService struct {
	repo        repositories.HousingRepository
	storage     StorageService
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewHousingService(
	repo repositories.HousingRepository,
	storage StorageService,
	broadcaster Broadcaster,
	logger *slog.Logger,
) HousingService {
	return &housingService{
		repo:        repo,
		storage:     storage,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *housingService) List(ctx context.Context, dir repositories.SortDirection) ([]models.HousingListing, error) {
	listings, err := s.repo.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list housing listings: %w", err)
	}
	return listings, nil
}

func (s *housingService) Get(ctx context.Context, id uuid.UUID) (*models.HousingListing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get housing listing: %w", err)
	}
	return listing, nil
}

func (s *housingService) Create(ctx context.Context, ownerID uuid.UUID, listing *models.HousingListing) (*models.HousingListing, error) {
	listing.ID = nil
	listing.CreatedAt = nil
	listing.UserID = &ownerID
	listing.Normalize()

	if err := listing.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if len(listing.PhotoURLs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, models.ErrNoPhotos)
	}
	for _, u := range listing.PhotoURLs {
		if err := s.storage.CheckOwnedURL(ownerID, u); err != nil {
			return nil, fmt.Errorf("%w: photo %s: %w", ErrValidationFailed, u, err)
		}
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNoUser):
			return nil, ErrAuthenticationFailed
		case errors.Is(err, repositories.ErrConstraintViolation):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to create housing listing: %w", err)
	}

	s.logger.InfoContext(ctx, "housing listing created",
		slog.Any("listing_id", listing.ID), slog.String("user_id", ownerID.String()))
	s.broadcaster.BroadcastToRoom(realtime.RoomHousingListings, realtime.Message{
		Type:    realtime.TypeListingCreated,
		Payload: listing,
		Room:    realtime.RoomHousingListings,
	})
	return listing, nil
}

func (s *housingService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOwned(ctx, id, callerID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			return ErrListingNotFound
		case errors.Is(err, repositories.ErrListingNotOwner):
			return ErrListingNotOwner
		}
		return fmt.Errorf("failed to delete housing listing: %w", err)
	}

	s.logger.InfoContext(ctx, "housing listing deleted",
		slog.String("listing_id", id.String()), slog.String("user_id", callerID.String()))
	s.broadcaster.BroadcastToRoom(realtime.RoomHousingListings, realtime.Message{
		Type:    realtime.TypeListingDeleted,
		Payload: map[string]string{"id": id.String()},
		Room:    realtime.RoomHousingListings,
	})

	s.removePhotos(ctx, callerID, listing.PhotoURLs)
	return nil
}

// removePhotos is best effort; a listing row is already gone when it runs.
// Only objects under the owner's own prefix are touched.
func (s *housingService) removePhotos(ctx context.Context, ownerID uuid.UUID, urls []string) {
	for _, u := range urls {
		if err := s.storage.RemoveOwned(ctx, ownerID, u); err != nil {
			s.logger.WarnContext(ctx, "failed to remove listing photo", slog.String("url", u), slog.Any("error", err))
		}
	}
}
