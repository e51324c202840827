package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/utdisa/isa-portal/models"
)

const DefaultEmailDomain = "utdallas.edu"

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) validate(domain string) error {
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return ErrFirstNameRequired
	case strings.TrimSpace(in.LastName) == "":
		return ErrLastNameRequired
	case strings.TrimSpace(in.PhoneNumber) == "":
		return ErrPhoneRequired
	case !strings.HasSuffix(strings.ToLower(strings.TrimSpace(in.Email)), "@"+domain):
		return &EmailDomainError{Domain: domain}
	case in.Password != in.ConfirmPassword:
		return ErrPasswordMismatch
	}
	return nil
}

type SessionOption func(*SessionManager)

// WithEmailDomain changes the domain sign-ups must use.
func WithEmailDomain(domain string) SessionOption {
	return func(m *SessionManager) {
		m.emailDomain = strings.ToLower(strings.TrimPrefix(domain, "@"))
	}
}

// SessionManager owns the current session state and notifies subscribers on every change.
type SessionManager struct {
	auth        Auth
	tables      Tables
	logger      *slog.Logger
	emailDomain string

	mu          sync.Mutex
	state       models.Session
	subscribers map[int]func(models.Session)
	nextID      int
}

func NewSessionManager(backend Backend, logger *slog.Logger, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		auth:        backend.Auth(),
		tables:      backend.Tables(),
		logger:      logger,
		emailDomain: DefaultEmailDomain,
		subscribers: make(map[int]func(models.Session)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *SessionManager) Current() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn for state changes and returns a function that removes it.
func (m *SessionManager) Subscribe(fn func(models.Session)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *SessionManager) set(s models.Session) {
	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return
	}
	m.state = s
	subs := make([]func(models.Session), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Refresh reloads the session from the backend. Any failure leaves the manager logged out.
func (m *SessionManager) Refresh(ctx context.Context) {
	user, err := m.auth.Session(ctx)
	if err != nil {
		m.logger.Debug("session lookup failed", "error", err)
		m.set(models.LoggedOutSession())
		return
	}
	if user == nil || user.Email == "" {
		m.set(models.LoggedOutSession())
		return
	}

	m.set(models.Session{
		LoggedIn:    true,
		Email:       user.Email,
		Verified:    user.EmailConfirmedAt != nil,
		DisplayName: m.displayName(ctx, user.ID),
		UserID:      user.ID,
	})
}

func (m *SessionManager) displayName(ctx context.Context, userID string) string {
	rows, err := m.tables.Select(ctx, models.TableProfiles, Query{Filters: []Filter{Eq("user_id", userID)}})
	if err != nil {
		m.logger.Debug("profile lookup failed", "user_id", userID, "error", err)
		return ""
	}
	profiles, err := decodeRows[models.Profile](rows)
	if err != nil {
		m.logger.Debug("profile decode failed", "user_id", userID, "error", err)
		return ""
	}
	if len(profiles) == 0 || profiles[0].FullName == nil {
		return ""
	}
	return *profiles[0].FullName
}

func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	if _, err := m.auth.SignIn(ctx, email, password); err != nil {
		return err
	}
	m.Refresh(ctx)
	return nil
}

// Register signs up a new account and stores its profile row. A "not found" reply from the
// backend during sign-up or the profile insert still counts as success.
func (m *SessionManager) Register(ctx context.Context, in RegisterInput) error {
	if err := in.validate(m.emailDomain); err != nil {
		return err
	}

	user, err := m.auth.SignUp(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		m.logger.Warn("sign-up returned not found, treating as success", "email", in.Email)
		m.Refresh(ctx)
		return nil
	}

	if user != nil && user.ID != "" {
		profile := map[string]string{
			"user_id":      user.ID,
			"full_name":    strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName),
			"phone_number": in.PhoneNumber,
		}
		if _, err := m.tables.Insert(ctx, models.TableProfiles, profile); err != nil {
			if !isNotFound(err) {
				return err
			}
			m.logger.Warn("profile insert returned not found, treating as success", "user_id", user.ID)
		}
	}

	m.Refresh(ctx)
	return nil
}

// Logout signs out and then refreshes. The state ends logged out even if sign-out fails.
func (m *SessionManager) Logout(ctx context.Context) {
	err := m.auth.SignOut(ctx)
	m.Refresh(ctx)
	if err != nil {
		m.logger.Warn("sign-out failed", "error", err)
		m.set(models.LoggedOutSession())
	}
}

func (m *SessionManager) ResetPassword(ctx context.Context, email string) error {
	return m.auth.ResetPasswordForEmail(ctx, strings.TrimSpace(email))
}

// Go runs fn in a new goroutine and reports its result on the returned channel.
func Go(fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
		close(done)
	}()
	return done
}
