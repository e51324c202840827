package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
)

// FormService stores the three public submission forms. Listing them is an admin
// concern enforced by the router.
type FormService interface {
	SubmitAirportPickup(ctx context.Context, rec *models.AirportPickupRecord) (*models.AirportPickupRecord, error)
	ListAirportPickups(ctx context.Context, dir repositories.SortDirection) ([]models.AirportPickupRecord, error)
	SubmitFeedback(ctx context.Context, rec *models.FeedbackRecord) (*models.FeedbackRecord, error)
	ListFeedback(ctx context.Context, dir repositories.SortDirection) ([]models.FeedbackRecord, error)
	SubmitSponsor(ctx context.Context, rec *models.SponsorRecord) (*models.SponsorRecord, error)
	ListSponsors(ctx context.Context, dir repositories.SortDirection) ([]models.SponsorRecord, error)
}

type formService struct {
	repo   repositories.FormRepository
	logger *slog.Logger
}

func NewFormService(repo repositories.FormRepository, logger *slog.Logger) FormService {
	return &formService{repo: repo, logger: logger}
}

func (s *formService) SubmitAirportPickup(ctx context.Context, rec *models.AirportPickupRecord) (*models.AirportPickupRecord, error) {
	rec.ID, rec.CreatedAt = nil, nil
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := s.repo.CreateAirportPickup(ctx, rec); err != nil {
		return nil, storeError("airport pickup form", err)
	}
	s.logger.InfoContext(ctx, "airport pickup form submitted", slog.Any("form_id", rec.ID))
	return rec, nil
}

func (s *formService) ListAirportPickups(ctx context.Context, dir repositories.SortDirection) ([]models.AirportPickupRecord, error) {
	recs, err := s.repo.ListAirportPickups(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list airport pickup forms: %w", err)
	}
	return recs, nil
}

func (s *formService) SubmitFeedback(ctx context.Context, rec *models.FeedbackRecord) (*models.FeedbackRecord, error) {
	rec.ID, rec.CreatedAt = nil, nil
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := s.repo.CreateFeedback(ctx, rec); err != nil {
		return nil, storeError("feedback form", err)
	}
	s.logger.InfoContext(ctx, "feedback submitted",
		slog.Any("form_id", rec.ID), slog.String("category", rec.Category.WireValue()))
	return rec, nil
}

func (s *formService) ListFeedback(ctx context.Context, dir repositories.SortDirection) ([]models.FeedbackRecord, error) {
	recs, err := s.repo.ListFeedback(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback forms: %w", err)
	}
	return recs, nil
}

func (s *formService) SubmitSponsor(ctx context.Context, rec *models.SponsorRecord) (*models.SponsorRecord, error) {
	rec.ID, rec.CreatedAt = nil, nil
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := s.repo.CreateSponsor(ctx, rec); err != nil {
		return nil, storeError("sponsor form", err)
	}
	s.logger.InfoContext(ctx, "sponsor inquiry submitted",
		slog.Any("form_id", rec.ID), slog.String("tier", rec.SponsorshipTier.WireValue()))
	return rec, nil
}

func (s *formService) ListSponsors(ctx context.Context, dir repositories.SortDirection) ([]models.SponsorRecord, error) {
	recs, err := s.repo.ListSponsors(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsor forms: %w", err)
	}
	return recs, nil
}

func storeError(form string, err error) error {
	if errors.Is(err, repositories.ErrConstraintViolation) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return fmt.Errorf("failed to store %s: %w", form, err)
}
