package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/utdisa/isa-portal/models"
)

// DirectoryRepository reads the seeded events and team tables.
type DirectoryRepository interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
}

type postgresDirectoryRepository struct {
	db *sql.DB
}

func NewPostgresDirectoryRepository(db *sql.DB) DirectoryRepository {
	return &postgresDirectoryRepository{db: db}
}

func (r *postgresDirectoryRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, location, location_url, registration_url, poster_image_name
		FROM events
		ORDER BY start_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.StartDate,
			&e.EndDate,
			&e.Location,
			&e.LocationURL,
			&e.RegistrationURL,
			&e.PosterImageName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func (r *postgresDirectoryRepository) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	query := `
		SELECT id, name, position, email, linkedin_url, bio, sort_order
		FROM team_members
		ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &m.Email, &m.LinkedInURL, &m.Bio, &m.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team members: %w", err)
	}
	return members, nil
}
