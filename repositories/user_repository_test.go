package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdisa/isa-portal/models"
)

func TestUserCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)
	id := uuid.New()
	now := time.Now()
	token := "confirm-token"

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@utdallas.edu", "hash", "student", token).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	user := &models.User{Email: "a@utdallas.edu", PasswordHash: "hash", Role: models.RoleStudent, ConfirmationToken: &token}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, id, user.ID)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserCreateEmailConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{Email: "a@utdallas.edu"})

	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)
	id := uuid.New()
	confirmed := time.Now()

	mock.ExpectQuery(`FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("A@utdallas.edu").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "role", "email_confirmed_at",
			"confirmation_token", "reset_token", "reset_expires_at", "created_at",
		}).AddRow(id.String(), "a@utdallas.edu", "hash", "admin", confirmed, nil, nil, nil, confirmed))

	user, err := repo.GetByEmail(context.Background(), "A@utdallas.edu")
	require.NoError(t, err)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsConfirmed())
	assert.Nil(t, user.ConfirmationToken)
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectExec(`UPDATE users SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.User{ID: uuid.New(), Role: models.RoleStudent})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSessionGetActive(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSessionRepository(db)
	id, userID := uuid.New(), uuid.New()
	exp := time.Now().Add(time.Hour)

	mock.ExpectQuery(`FROM auth_sessions\s+WHERE id = \$1 AND expires_at > now\(\)`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).
			AddRow(id.String(), userID.String(), exp, time.Now()))

	s, err := repo.GetActive(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, userID, s.UserID)

	mock.ExpectQuery(`FROM auth_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}))

	_, err = repo.GetActive(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionCreateAndDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSessionRepository(db)
	id, userID := uuid.New(), uuid.New()
	exp := time.Now().Add(time.Hour)

	mock.ExpectQuery(`INSERT INTO auth_sessions`).
		WithArgs(userID, exp).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), time.Now()))
	mock.ExpectExec(`DELETE FROM auth_sessions WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM auth_sessions WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := &models.AuthSession{UserID: userID, ExpiresAt: exp}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, id, s.ID)

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrSessionNotFound)
}

func TestProfileCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProfileRepository(db)
	userID := uuid.New()
	name, phone := "Asha Rao", "5551234567"

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(userID, name, phone).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "profiles_pkey"})
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnError(errors.New("connection reset"))

	p := &models.Profile{UserID: userID, FullName: &name, PhoneNumber: &phone}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotNil(t, p.CreatedAt)

	assert.ErrorIs(t, repo.Create(context.Background(), p), ErrProfileConflict)
	assert.ErrorContains(t, repo.Create(context.Background(), p), "connection reset")
}

func TestProfileGetByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProfileRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "full_name", "phone_number", "created_at"}).
			AddRow(userID.String(), "Asha Rao", nil, time.Now()))

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Asha Rao", *p.FullName)
	assert.Nil(t, p.PhoneNumber)
}
