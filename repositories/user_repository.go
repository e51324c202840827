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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByConfirmationToken(ctx context.Context, token string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, email_confirmed_at, confirmation_token, reset_token, reset_expires_at, created_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, confirmation_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ConfirmationToken,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if code, constraint := pqCode(err); code == pqUniqueViolation && constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *postgresUserRepository) GetByConfirmationToken(ctx context.Context, token string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE confirmation_token = $1`, token)
}

func (r *postgresUserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			email = $1,
			password_hash = $2,
			role = $3,
			email_confirmed_at = $4,
			confirmation_token = $5,
			reset_token = $6,
			reset_expires_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.EmailConfirmedAt,
		user.ConfirmationToken,
		user.ResetToken,
		user.ResetExpiresAt,
		user.ID,
	)
	if err != nil {
		if code, constraint := pqCode(err); code == pqUniqueViolation && constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.EmailConfirmedAt,
		&user.ConfirmationToken,
		&user.ResetToken,
		&user.ResetExpiresAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
