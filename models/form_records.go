package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AirportPickupRecord is the row shape of airport_pickup_forms.
type AirportPickupRecord struct {
	ID                  *uuid.UUID    `json:"id,omitempty" db:"id"`
	Email               string        `json:"email" db:"email"`
	UTDID               string        `json:"utd_id" db:"utd_id"`
	FirstName           string        `json:"first_name" db:"first_name"`
	LastName            string        `json:"last_name" db:"last_name"`
	UTDEmail            string        `json:"utd_email" db:"utd_email"`
	WhatsAppNumber      string        `json:"whatsapp_number" db:"whatsapp_number"`
	Gender              Gender        `json:"gender" db:"gender"`
	EmergencyContact    string        `json:"emergency_contact" db:"emergency_contact"`
	FlightNumber        string        `json:"flight_number" db:"flight_number"`
	FlightDate          Date          `json:"flight_date" db:"flight_date"`
	FlightTime          string        `json:"flight_time" db:"flight_time"`
	ArrivalAirport      DallasAirport `json:"arrival_airport" db:"arrival_airport"`
	PortOfEntry         string        `json:"port_of_entry" db:"port_of_entry"`
	CheckInBagsCount    int           `json:"checkin_bags_count" db:"checkin_bags_count"`
	CabinBagsCount      int           `json:"cabin_bags_count" db:"cabin_bags_count"`
	DropOffLocation     string        `json:"drop_off_location" db:"drop_off_location"`
	AcceptanceLetterURL string        `json:"acceptance_letter_url" db:"acceptance_letter_url"`
	StudentPhotoURL     string        `json:"student_photo_url" db:"student_photo_url"`
	ItineraryImageURL   string        `json:"itinerary_image_url" db:"itinerary_image_url"`
	CreatedAt           *time.Time    `json:"created_at,omitempty" db:"created_at"`
}

func (r AirportPickupRecord) Validate() error {
	err := requireFields(
		field{"email", r.Email},
		field{"utd_id", r.UTDID},
		field{"first_name", r.FirstName},
		field{"last_name", r.LastName},
		field{"utd_email", r.UTDEmail},
		field{"whatsapp_number", r.WhatsAppNumber},
		field{"emergency_contact", r.EmergencyContact},
		field{"flight_number", r.FlightNumber},
		field{"port_of_entry", r.PortOfEntry},
		field{"drop_off_location", r.DropOffLocation},
		field{"acceptance_letter_url", r.AcceptanceLetterURL},
		field{"student_photo_url", r.StudentPhotoURL},
		field{"itinerary_image_url", r.ItineraryImageURL},
	)
	if err != nil {
		return err
	}
	if r.FlightDate.IsZero() {
		return fmt.Errorf("%w: flight_date is required", ErrInvalidForm)
	}
	if r.FlightTime != "" {
		if _, err := time.Parse(ClockLayout, r.FlightTime); err != nil {
			return fmt.Errorf("%w: flight_time must use HH:MM", ErrInvalidForm)
		}
	}
	if r.CheckInBagsCount < 0 || r.CabinBagsCount < 0 {
		return fmt.Errorf("%w: bag counts must not be negative", ErrInvalidForm)
	}
	return nil
}

// FeedbackRecord is the row shape of feedback_forms.
type FeedbackRecord struct {
	ID        *uuid.UUID       `json:"id,omitempty" db:"id"`
	Name      string           `json:"name" db:"name"`
	Email     string           `json:"email" db:"email"`
	Category  FeedbackCategory `json:"category" db:"category"`
	Message   string           `json:"message" db:"message"`
	CreatedAt *time.Time       `json:"created_at,omitempty" db:"created_at"`
}

func (r FeedbackRecord) Validate() error {
	return requireFields(
		field{"name", r.Name},
		field{"email", r.Email},
		field{"message", r.Message},
	)
}

// SponsorRecord is the row shape of sponsor_forms.
type SponsorRecord struct {
	ID              *uuid.UUID      `json:"id,omitempty" db:"id"`
	CompanyName     string          `json:"company_name" db:"company_name"`
	ContactName     string          `json:"contact_name" db:"contact_name"`
	Email           string          `json:"email" db:"email"`
	Phone           string          `json:"phone" db:"phone"`
	SponsorshipTier SponsorshipTier `json:"sponsorship_tier" db:"sponsorship_tier"`
	Message         *string         `json:"message,omitempty" db:"message"`
	CreatedAt       *time.Time      `json:"created_at,omitempty" db:"created_at"`
}

func (r SponsorRecord) Validate() error {
	return requireFields(
		field{"company_name", r.CompanyName},
		field{"contact_name", r.ContactName},
		field{"email", r.Email},
		field{"phone", r.Phone},
	)
}

type field struct {
	name, value string
}

// requireFields reports the first empty field in column order.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidForm, f.name)
		}
	}
	return nil
}
