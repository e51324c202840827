package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidListing = errors.New("invalid housing listing")
	ErrNoPhotos       = errors.New("a listing needs at least one photo")
)

type Availability string

const (
	AvailabilityWhole Availability = "whole"
	AvailabilityRoom  Availability = "room"
)

type LeaseType string

const (
	LeaseNew      LeaseType = "new"
	LeaseExisting LeaseType = "existing"
)

var ApartmentTypes = []string{"1b1b", "2b2b", "2b2.5b", "3b2b", "3b3b"}

type HousingListing struct {
	ID              *uuid.UUID   `json:"id,omitempty" db:"id"`
	UserID          *uuid.UUID   `json:"user_id,omitempty" db:"user_id"`
	ApartmentName   string       `json:"apartment_name" db:"apartment_name"`
	ApartmentType   string       `json:"apartment_type" db:"apartment_type"`
	Availability    Availability `json:"availability" db:"availability"`
	Rent            float64      `json:"rent" db:"rent"`
	ApartmentNumber *string      `json:"apartment_number,omitempty" db:"apartment_number"`
	LeaseType       LeaseType    `json:"lease_type" db:"lease_type"`
	LeaseMonthsLeft *int         `json:"lease_months_left,omitempty" db:"lease_months_left"`
	IsTemporary     bool         `json:"is_temporary" db:"is_temporary"`
	AvailableFrom   *Date        `json:"available_from,omitempty" db:"available_from"`
	AvailableTo     *Date        `json:"available_to,omitempty" db:"available_to"`
	RentPerDay      *float64     `json:"rent_per_day,omitempty" db:"rent_per_day"`
	PhotoURLs       []string     `json:"photo_urls" db:"photo_urls"`
	CreatedAt       *time.Time   `json:"created_at,omitempty" db:"created_at"`
}

// Normalize drops fields that carry no meaning for the chosen lease and temporary settings.
func (l *HousingListing) Normalize() {
	l.ApartmentName = strings.TrimSpace(l.ApartmentName)
	if l.ApartmentNumber != nil && strings.TrimSpace(*l.ApartmentNumber) == "" {
		l.ApartmentNumber = nil
	}
	if l.LeaseType != LeaseExisting {
		l.LeaseMonthsLeft = nil
	}
	if !l.IsTemporary {
		l.AvailableFrom = nil
		l.AvailableTo = nil
		l.RentPerDay = nil
	}
}

// Validate checks the listing fields without looking at photos.
func (l HousingListing) Validate() error {
	if strings.TrimSpace(l.ApartmentName) == "" {
		return fmt.Errorf("%w: apartment name is required", ErrInvalidListing)
	}
	if l.ApartmentType == "" {
		return fmt.Errorf("%w: apartment type is required", ErrInvalidListing)
	}
	if l.Availability != AvailabilityWhole && l.Availability != AvailabilityRoom {
		return fmt.Errorf("%w: availability must be %q or %q", ErrInvalidListing, AvailabilityWhole, AvailabilityRoom)
	}
	if l.Rent < 0 {
		return fmt.Errorf("%w: rent must not be negative", ErrInvalidListing)
	}
	switch l.LeaseType {
	case LeaseNew:
	case LeaseExisting:
		if l.LeaseMonthsLeft == nil {
			return fmt.Errorf("%w: months left is required for an existing lease", ErrInvalidListing)
		}
		if *l.LeaseMonthsLeft < 0 {
			return fmt.Errorf("%w: months left must not be negative", ErrInvalidListing)
		}
	default:
		return fmt.Errorf("%w: lease type must be %q or %q", ErrInvalidListing, LeaseNew, LeaseExisting)
	}
	if l.IsTemporary {
		if l.AvailableFrom != nil && l.AvailableTo != nil && l.AvailableTo.Before(l.AvailableFrom.Time) {
			return fmt.Errorf("%w: available-to date is before available-from date", ErrInvalidListing)
		}
		if l.RentPerDay != nil && *l.RentPerDay < 0 {
			return fmt.Errorf("%w: rent per day must not be negative", ErrInvalidListing)
		}
	}
	return nil
}

// IsOwnedBy reports whether userID created the listing.
func (l HousingListing) IsOwnedBy(userID uuid.UUID) bool {
	return l.UserID != nil && *l.UserID == userID
}
