package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/utdisa/isa-portal/models"
)

type FormRepository interface {
	CreateAirportPickup(ctx context.Context, rec *models.AirportPickupRecord) error
	ListAirportPickups(ctx context.Context, dir SortDirection) ([]models.AirportPickupRecord, error)
	CreateFeedback(ctx context.Context, rec *models.FeedbackRecord) error
	ListFeedback(ctx context.Context, dir SortDirection) ([]models.FeedbackRecord, error)
	CreateSponsor(ctx context.Context, rec *models.SponsorRecord) error
	ListSponsors(ctx context.Context, dir SortDirection) ([]models.SponsorRecord, error)
}

type postgresFormRepository struct {
	db *sql.DB
}

func NewPostgresFormRepository(db *sql.DB) FormRepository {
	return &postgresFormRepository{db: db}
}

const airportPickupColumns = `id, email, utd_id, first_name, last_name, utd_email, whatsapp_number, gender,
	emergency_contact, flight_number, flight_date, flight_time, arrival_airport, port_of_entry,
	checkin_bags_count, cabin_bags_count, drop_off_location, acceptance_letter_url,
	student_photo_url, itinerary_image_url, created_at`

func (r *postgresFormRepository) CreateAirportPickup(ctx context.Context, rec *models.AirportPickupRecord) error {
	query := `
		INSERT INTO airport_pickup_forms (
			email, utd_id, first_name, last_name, utd_email, whatsapp_number, gender,
			emergency_contact, flight_number, flight_date, flight_time, arrival_airport, port_of_entry,
			checkin_bags_count, cabin_bags_count, drop_off_location, acceptance_letter_url,
			student_photo_url, itinerary_image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.Email,
		rec.UTDID,
		rec.FirstName,
		rec.LastName,
		rec.UTDEmail,
		rec.WhatsAppNumber,
		rec.Gender,
		rec.EmergencyContact,
		rec.FlightNumber,
		rec.FlightDate,
		rec.FlightTime,
		rec.ArrivalAirport,
		rec.PortOfEntry,
		rec.CheckInBagsCount,
		rec.CabinBagsCount,
		rec.DropOffLocation,
		rec.AcceptanceLetterURL,
		rec.StudentPhotoURL,
		rec.ItineraryImageURL,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert airport pickup form: %w", mapConstraintError(err))
	}
	return nil
}

func (r *postgresFormRepository) ListAirportPickups(ctx context.Context, dir SortDirection) ([]models.AirportPickupRecord, error) {
	query := `SELECT ` + airportPickupColumns + ` FROM airport_pickup_forms ORDER BY created_at ` + dir.sql()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query airport pickup forms: %w", err)
	}
	defer rows.Close()

	records := make([]models.AirportPickupRecord, 0)
	for rows.Next() {
		var rec models.AirportPickupRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Email,
			&rec.UTDID,
			&rec.FirstName,
			&rec.LastName,
			&rec.UTDEmail,
			&rec.WhatsAppNumber,
			&rec.Gender,
			&rec.EmergencyContact,
			&rec.FlightNumber,
			&rec.FlightDate,
			&rec.FlightTime,
			&rec.ArrivalAirport,
			&rec.PortOfEntry,
			&rec.CheckInBagsCount,
			&rec.CabinBagsCount,
			&rec.DropOffLocation,
			&rec.AcceptanceLetterURL,
			&rec.StudentPhotoURL,
			&rec.ItineraryImageURL,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan airport pickup form: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airport pickup forms: %w", err)
	}
	return records, nil
}

func (r *postgresFormRepository) CreateFeedback(ctx context.Context, rec *models.FeedbackRecord) error {
	query := `
		INSERT INTO feedback_forms (name, email, category, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, rec.Name, rec.Email, rec.Category, rec.Message).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert feedback form: %w", mapConstraintError(err))
	}
	return nil
}

func (r *postgresFormRepository) ListFeedback(ctx context.Context, dir SortDirection) ([]models.FeedbackRecord, error) {
	query := `SELECT id, name, email, category, message, created_at FROM feedback_forms ORDER BY created_at ` + dir.sql()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback forms: %w", err)
	}
	defer rows.Close()

	records := make([]models.FeedbackRecord, 0)
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Category, &rec.Message, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback form: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback forms: %w", err)
	}
	return records, nil
}

func (r *postgresFormRepository) CreateSponsor(ctx context.Context, rec *models.SponsorRecord) error {
	query := `
		INSERT INTO sponsor_forms (company_name, contact_name, email, phone, sponsorship_tier, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.CompanyName,
		rec.ContactName,
		rec.Email,
		rec.Phone,
		rec.SponsorshipTier,
		rec.Message,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sponsor form: %w", mapConstraintError(err))
	}
	return nil
}

func (r *postgresFormRepository) ListSponsors(ctx context.Context, dir SortDirection) ([]models.SponsorRecord, error) {
	query := `
		SELECT id, company_name, contact_name, email, phone, sponsorship_tier, message, created_at
		FROM sponsor_forms
		ORDER BY created_at ` + dir.sql()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsor forms: %w", err)
	}
	defer rows.Close()

	records := make([]models.SponsorRecord, 0)
	for rows.Next() {
		var rec models.SponsorRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CompanyName,
			&rec.ContactName,
			&rec.Email,
			&rec.Phone,
			&rec.SponsorshipTier,
			&rec.Message,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sponsor form: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sponsor forms: %w", err)
	}
	return records, nil
}
