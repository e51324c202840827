package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/utdisa/isa-portal/models"
)

var (
	ErrListingNotFound = errors.New("housing listing not found")
	ErrListingNotOwner = errors.New("housing listing belongs to another user")
	ErrListingNoUser   = errors.New("housing listing owner does not exist")
)

type HousingRepository interface {
	Create(ctx context.Context, listing *models.HousingListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HousingListing, error)
	List(ctx context.Context, dir SortDirection) ([]models.HousingListing, error)
	// DeleteOwned removes the listing only when ownerID created it.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type postgresHousingRepository struct {
	db *sql.DB
}

func NewPostgresHousingRepository(db *sql.DB) HousingRepository {
	return &postgresHousingRepository{db: db}
}

const listingColumns = `id, user_id, apartment_name, apartment_type, availability, rent, apartment_number,
	lease_type, lease_months_left, is_temporary, available_from, available_to, rent_per_day,
	photo_urls, created_at`

func (r *postgresHousingRepository) Create(ctx context.Context, listing *models.HousingListing) error {
	query := `
		INSERT INTO housing_listings (
			user_id, apartment_name, apartment_type, availability, rent, apartment_number,
			lease_type, lease_months_left, is_temporary, available_from, available_to, rent_per_day,
			photo_urls
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		listing.UserID,
		listing.ApartmentName,
		listing.ApartmentType,
		listing.Availability,
		listing.Rent,
		listing.ApartmentNumber,
		listing.LeaseType,
		listing.LeaseMonthsLeft,
		listing.IsTemporary,
		listing.AvailableFrom,
		listing.AvailableTo,
		listing.RentPerDay,
		pq.Array(listing.PhotoURLs),
	).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		if code, _ := pqCode(err); code == pqForeignKeyViolation {
			return ErrListingNoUser
		}
		return fmt.Errorf("failed to insert housing listing: %w", mapConstraintError(err))
	}
	return nil
}

func (r *postgresHousingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HousingListing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM housing_listings WHERE id = $1`, id)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan housing listing: %w", err)
	}
	return listing, nil
}

func (r *postgresHousingRepository) List(ctx context.Context, dir SortDirection) ([]models.HousingListing, error) {
	query := `SELECT ` + listingColumns + ` FROM housing_listings ORDER BY created_at ` + dir.sql()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query housing listings: %w", err)
	}
	defer rows.Close()

	listings := make([]models.HousingListing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan housing listing: %w", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating housing listings: %w", err)
	}
	return listings, nil
}

func (r *postgresHousingRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM housing_listings WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete housing listing: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if deleted > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM housing_listings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check housing listing: %w", err)
	}
	if !exists {
		return ErrListingNotFound
	}
	return ErrListingNotOwner
}

func scanListing(s scanner) (*models.HousingListing, error) {
	var l models.HousingListing
	var photos pq.StringArray
	if err := s.Scan(
		&l.ID,
		&l.UserID,
		&l.ApartmentName,
		&l.ApartmentType,
		&l.Availability,
		&l.Rent,
		&l.ApartmentNumber,
		&l.LeaseType,
		&l.LeaseMonthsLeft,
		&l.IsTemporary,
		&l.AvailableFrom,
		&l.AvailableTo,
		&l.RentPerDay,
		&photos,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.PhotoURLs = []string(photos)
	if l.PhotoURLs == nil {
		l.PhotoURLs = []string{}
	}
	return &l, nil
}
