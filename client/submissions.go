package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utdisa/isa-portal/models"
)

// SubmissionService sends the three forms and lists what has been submitted.
type SubmissionService struct {
	tables Tables
	logger *slog.Logger
}

func NewSubmissionService(backend Backend, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{tables: backend.Tables(), logger: logger}
}

func (s *SubmissionService) SubmitAirportPickup(ctx context.Context, form models.AirportPickupForm) (*models.AirportPickupRecord, error) {
	if !form.IsValid() {
		return nil, models.ErrInvalidForm
	}
	return insertRow(ctx, s.tables, models.TableAirportPickupForms, form.Record())
}

func (s *SubmissionService) SubmitFeedback(ctx context.Context, form models.FeedbackForm) (*models.FeedbackRecord, error) {
	if !form.IsValid() {
		return nil, models.ErrInvalidForm
	}
	return insertRow(ctx, s.tables, models.TableFeedbackForms, form.Record())
}

func (s *SubmissionService) SubmitSponsor(ctx context.Context, form models.SponsorForm) (*models.SponsorRecord, error) {
	if !form.IsValid() {
		return nil, models.ErrInvalidForm
	}
	return insertRow(ctx, s.tables, models.TableSponsorForms, form.Record())
}

func (s *SubmissionService) ListAirportPickups(ctx context.Context) ([]models.AirportPickupRecord, error) {
	return selectRows[models.AirportPickupRecord](ctx, s.tables, models.TableAirportPickupForms, NewestFirst())
}

func (s *SubmissionService) ListFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	return selectRows[models.FeedbackRecord](ctx, s.tables, models.TableFeedbackForms, NewestFirst())
}

func (s *SubmissionService) ListSponsors(ctx context.Context) ([]models.SponsorRecord, error) {
	return selectRows[models.SponsorRecord](ctx, s.tables, models.TableSponsorForms, NewestFirst())
}

// insertRow performs exactly one insert. When the backend echoes nothing back, row is returned.
func insertRow[T any](ctx context.Context, tables Tables, table string, row T) (*T, error) {
	raw, err := tables.Insert(ctx, table, row)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &row, nil
	}
	stored, err := decodeRow[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s row: %v", ErrDecode, table, err)
	}
	return stored, nil
}

func selectRows[T any](ctx context.Context, tables Tables, table string, q Query) ([]T, error) {
	raw, err := tables.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s rows: %v", ErrDecode, table, err)
	}
	return rows, nil
}
