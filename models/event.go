package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEventDateRange = errors.New("event end date must not be before start date")

type Event struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	StartDate       time.Time  `json:"start_date" db:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty" db:"end_date"`
	Location        string     `json:"location" db:"location"`
	LocationURL     *string    `json:"location_url,omitempty" db:"location_url"`
	RegistrationURL *string    `json:"registration_url,omitempty" db:"registration_url"`
	PosterImageName string     `json:"poster_image_name" db:"poster_image_name"`
}

func (e Event) Validate() error {
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return ErrEventDateRange
	}
	return nil
}

// IsUpcoming reports whether the event has not finished yet at now.
func (e Event) IsUpcoming(now time.Time) bool {
	if e.EndDate != nil {
		return !e.EndDate.Before(now)
	}
	return !e.StartDate.Before(now)
}
