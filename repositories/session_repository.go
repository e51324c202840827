package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
)

var ErrSessionNotFound = errors.New("auth session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	// GetActive returns the session only while it has not expired.
	GetActive(ctx context.Context, id uuid.UUID) (*models.AuthSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (user_id, expires_at)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, session.UserID, session.ExpiresAt).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert auth session: %w", err)
	}
	return nil
}

func (r *postgresSessionRepository) GetActive(ctx context.Context, id uuid.UUID) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM auth_sessions
		WHERE id = $1 AND expires_at > now()`

	var s models.AuthSession
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan auth session: %w", err)
	}
	return &s, nil
}

func (r *postgresSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete auth session: %w", err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired auth sessions: %w", err)
	}
	return result.RowsAffected()
}
