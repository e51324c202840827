package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
)

type AuthService interface {
	SignUp(ctx context.Context, input CredentialsInput) (*AuthResult, error)
	SignIn(ctx context.Context, input CredentialsInput) (*AuthResult, error)
	SignOut(ctx context.Context, claims *Claims) error
	// Authenticate accepts a token only while its auth session row is alive.
	Authenticate(ctx context.Context, token string) (*Claims, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ConfirmEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type CredentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

// AuthSettings controls who may sign up and who becomes an admin.
type AuthSettings struct {
	AllowedEmailDomain string
	AdminEmails        []string
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokens      *TokenManager
	mailer      Mailer
	settings    AuthSettings
	logger      *slog.Logger
	now         func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokens *TokenManager,
	mailer Mailer,
	settings AuthSettings,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		mailer:      mailer,
		settings:    settings,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, input CredentialsInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidationFailed)
	}
	if !s.domainAllowed(email) {
		return nil, fmt.Errorf("%w: use your @%s email", ErrEmailDomainNotAllowed, s.settings.AllowedEmailDomain)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	confirmationToken, err := generateRandomToken(32)
	if err != nil {
		return nil, err
	}

	role := models.RoleStudent
	if slices.Contains(s.settings.AdminEmails, email) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:             email,
		PasswordHash:      string(hashedPassword),
		Role:              role,
		ConfirmationToken: &confirmationToken,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendConfirmationEmail(ctx, user.Email, confirmationToken); err != nil {
		s.logger.WarnContext(ctx, "failed to send confirmation email",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
	}
	s.logger.InfoContext(ctx, "user signed up", slog.String("user_id", user.ID.String()), slog.String("role", string(role)))

	return s.startSession(ctx, user)
}

func (s *authService) SignIn(ctx context.Context, input CredentialsInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	return s.startSession(ctx, user)
}

func (s *authService) startSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	session := &models.AuthSession{
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.tokens.TTL()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create auth session: %w", err)
	}

	token, err := s.tokens.Issue(user, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token, ExpiresAt: session.ExpiresAt}, nil
}

func (s *authService) SignOut(ctx context.Context, claims *Claims) error {
	err := s.sessionRepo.Delete(ctx, claims.SessionID)
	if err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete auth session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetActive(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session ended", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load auth session: %w", err)
	}
	if session.UserID.String() != claims.Subject {
		return nil, fmt.Errorf("%w: session belongs to another user", ErrInvalidToken)
	}
	return claims, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find user by confirmation token: %w", err)
	}

	now := s.now()
	user.EmailConfirmedAt = &now
	user.ConfirmationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	return nil
}

// RequestPasswordReset never reveals whether the email is registered.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user by email: %w", err)
	}

	resetToken, err := generateRandomToken(32)
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(resetTokenTTL)
	user.ResetToken = &resetToken
	user.ResetExpiresAt = &expiresAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetToken); err != nil {
		s.logger.WarnContext(ctx, "failed to send password reset email",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find user by reset token: %w", err)
	}
	if user.ResetExpiresAt == nil || user.ResetExpiresAt.Before(s.now()) {
		return ErrInvalidToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.ResetToken = nil
	user.ResetExpiresAt = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return n, nil
}

func (s *authService) domainAllowed(email string) bool {
	if s.settings.AllowedEmailDomain == "" {
		return true
	}
	return strings.HasSuffix(email, "@"+s.settings.AllowedEmailDomain)
}

func generateRandomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
