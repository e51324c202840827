package models

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidForm is returned when a form is submitted with missing required fields.
var ErrInvalidForm = errors.New("please fill in all required fields")

type AirportPickupForm struct {
	// Basic information
	Email            string `json:"email"`
	UTDID            string `json:"utd_id"`
	UTDEmail         string `json:"utd_email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	WhatsAppNumber   string `json:"whatsapp_number"`
	Gender           Gender `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`

	// Student verification
	IsVerifiedStudent   bool   `json:"is_verified_student"`
	AcceptanceLetterURL string `json:"acceptance_letter_url"`
	StudentPhotoURL     string `json:"student_photo_url"`

	// Flight details
	FlightNumber   string        `json:"flight_number"`
	ArrivalDate    Date          `json:"arrival_date"`
	ArrivalTime    string        `json:"arrival_time"`
	ArrivalAirport DallasAirport `json:"arrival_airport"`
	PortOfEntry    string        `json:"port_of_entry"`
	ItineraryURL   string        `json:"itinerary_url"`

	CheckInBagsCount int `json:"checkin_bags_count"`
	CabinBagsCount   int `json:"cabin_bags_count"`

	DropOffLocation string `json:"drop_off_location"`

	AgreesToTerms  bool `json:"agrees_to_terms"`
	AgreesToWaiver bool `json:"agrees_to_waiver"`
}

// NewAirportPickupForm returns an empty form with the defaults shown when the form opens.
// Arrival date and time start at the current moment.
func NewAirportPickupForm() AirportPickupForm {
	return newAirportPickupFormAt(time.Now())
}

func newAirportPickupFormAt(now time.Time) AirportPickupForm {
	return AirportPickupForm{
		ArrivalDate:      NewDate(now.Year(), now.Month(), now.Day()),
		ArrivalTime:      now.Format(ClockLayout),
		CheckInBagsCount: 1,
		CabinBagsCount:   1,
	}
}

func (f AirportPickupForm) IsValid() bool {
	if f.ArrivalDate.IsZero() {
		return false
	}
	if f.ArrivalTime != "" {
		if _, err := time.Parse(ClockLayout, f.ArrivalTime); err != nil {
			return false
		}
	}
	return f.Email != "" &&
		f.UTDID != "" &&
		f.UTDEmail != "" &&
		f.FirstName != "" &&
		f.LastName != "" &&
		f.WhatsAppNumber != "" &&
		f.EmergencyContact != "" &&
		f.IsVerifiedStudent &&
		f.AcceptanceLetterURL != "" &&
		f.StudentPhotoURL != "" &&
		f.FlightNumber != "" &&
		f.PortOfEntry != "" &&
		f.ItineraryURL != "" &&
		f.DropOffLocation != "" &&
		f.AgreesToTerms &&
		f.AgreesToWaiver
}

func (f AirportPickupForm) Record() AirportPickupRecord {
	return AirportPickupRecord{
		Email:               f.Email,
		UTDID:               f.UTDID,
		FirstName:           f.FirstName,
		LastName:            f.LastName,
		UTDEmail:            f.UTDEmail,
		WhatsAppNumber:      f.WhatsAppNumber,
		Gender:              f.Gender,
		EmergencyContact:    f.EmergencyContact,
		FlightNumber:        f.FlightNumber,
		FlightDate:          f.ArrivalDate,
		FlightTime:          f.ArrivalTime,
		ArrivalAirport:      f.ArrivalAirport,
		PortOfEntry:         f.PortOfEntry,
		CheckInBagsCount:    f.CheckInBagsCount,
		CabinBagsCount:      f.CabinBagsCount,
		DropOffLocation:     f.DropOffLocation,
		AcceptanceLetterURL: f.AcceptanceLetterURL,
		StudentPhotoURL:     f.StudentPhotoURL,
		ItineraryImageURL:   f.ItineraryURL,
	}
}

type FeedbackForm struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Category FeedbackCategory `json:"category"`
	Message  string           `json:"message"`
}

func (f FeedbackForm) IsValid() bool {
	return f.Name != "" && f.Email != "" && f.Message != ""
}

func (f FeedbackForm) Record() FeedbackRecord {
	return FeedbackRecord{
		Name:     f.Name,
		Email:    f.Email,
		Category: f.Category,
		Message:  f.Message,
	}
}

type SponsorForm struct {
	CompanyName string          `json:"company_name"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Tier        SponsorshipTier `json:"sponsorship_tier"`
	Message     string          `json:"message"`
}

func (f SponsorForm) IsValid() bool {
	return f.CompanyName != "" && f.ContactName != "" && f.Email != "" && f.Phone != ""
}

func (f SponsorForm) Record() SponsorRecord {
	var msg *string
	if f.Message != "" {
		m := f.Message
		msg = &m
	}
	return SponsorRecord{
		CompanyName:     f.CompanyName,
		ContactName:     f.ContactName,
		Email:           f.Email,
		Phone:           f.Phone,
		SponsorshipTier: f.Tier,
		Message:         msg,
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneNumber strips every non-digit. A 12-digit Indian number ("91" + 10 digits)
// is kept as country code followed by the subscriber number, with no separators.
func FormatPhoneNumber(number string) string {
	cleaned := digitsOnly(number)
	if strings.HasPrefix(cleaned, "91") && len(cleaned) == 12 {
		return cleaned[:2] + cleaned[2:]
	}
	return cleaned
}

// DisplayPhoneNumber renders a 10-digit number as (XXX) XXX-XXXX and returns anything else as given.
func DisplayPhoneNumber(phone string) string {
	cleaned := digitsOnly(phone)
	if len(cleaned) == 10 {
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	}
	return phone
}
