package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileConflict = errors.New("profile already exists")
	ErrProfileNoUser   = errors.New("profile user does not exist")
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, phone_number)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	var createdAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, profile.UserID, profile.FullName, profile.PhoneNumber).Scan(&createdAt)
	if err != nil {
		switch code, _ := pqCode(err); code {
		case pqUniqueViolation:
			return ErrProfileConflict
		case pqForeignKeyViolation:
			return ErrProfileNoUser
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	if createdAt.Valid {
		profile.CreatedAt = &createdAt.Time
	}
	return nil
}

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT user_id, full_name, phone_number, created_at FROM profiles WHERE user_id = $1`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.PhoneNumber, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return &p, nil
}
