package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
	"github.com/utdisa/isa-portal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *fakeUserRepo) GetByConfirmationToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ConfirmationToken != nil && *u.ConfirmationToken == token })
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.AuthSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]models.AuthSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) GetActive(_ context.Context, id uuid.UUID) (*models.AuthSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return nil, repositories.ErrSessionNotFound
	}
	return &s, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if !s.ExpiresAt.After(time.Now()) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

type sentMail struct {
	kind, to, token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendConfirmationEmail(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{"confirm", to, token})
	return m.err
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{"reset", to, token})
	return m.err
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakeHousingRepo struct {
	listings  map[uuid.UUID]models.HousingListing
	createErr error
}

func newFakeHousingRepo() *fakeHousingRepo {
	return &fakeHousingRepo{listings: make(map[uuid.UUID]models.HousingListing)}
}

func (r *fakeHousingRepo) Create(_ context.Context, l *models.HousingListing) error {
	if r.createErr != nil {
		return r.createErr
	}
	id := uuid.New()
	now := time.Now()
	l.ID, l.CreatedAt = &id, &now
	r.listings[id] = *l
	return nil
}

func (r *fakeHousingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.HousingListing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, repositories.ErrListingNotFound
	}
	return &l, nil
}

func (r *fakeHousingRepo) List(_ context.Context, _ repositories.SortDirection) ([]models.HousingListing, error) {
	out := make([]models.HousingListing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeHousingRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	l, ok := r.listings[id]
	if !ok {
		return repositories.ErrListingNotFound
	}
	if l.UserID == nil || *l.UserID != ownerID {
		return repositories.ErrListingNotOwner
	}
	delete(r.listings, id)
	return nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []any
	rooms    []string
}

func (b *fakeBroadcaster) BroadcastToRoom(room string, message any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, room)
	b.messages = append(b.messages, message)
}

type fakeUploader struct {
	objects map[string][]byte
	deleted []string
	err     error
}

var _ storage.FileUploader = (*fakeUploader)(nil)

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ int64, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	if _, ok := u.objects[key]; ok {
		return nil, storage.ErrObjectExists
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	if u.err != nil {
		return u.err
	}
	u.deleted = append(u.deleted, key)
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]models.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	if _, ok := r.profiles[p.UserID]; ok {
		return repositories.ErrProfileConflict
	}
	now := time.Now()
	p.CreatedAt = &now
	r.profiles[p.UserID] = *p
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return &p, nil
}

type fakeFormRepo struct {
	feedback  []models.FeedbackRecord
	sponsors  []models.SponsorRecord
	pickups   []models.AirportPickupRecord
	createErr error
}

func (r *fakeFormRepo) assign(id **uuid.UUID, created **time.Time) {
	v := uuid.New()
	now := time.Now()
	*id, *created = &v, &now
}

func (r *fakeFormRepo) CreateAirportPickup(_ context.Context, rec *models.AirportPickupRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.assign(&rec.ID, &rec.CreatedAt)
	r.pickups = append(r.pickups, *rec)
	return nil
}

func (r *fakeFormRepo) ListAirportPickups(context.Context, repositories.SortDirection) ([]models.AirportPickupRecord, error) {
	return r.pickups, nil
}

func (r *fakeFormRepo) CreateFeedback(_ context.Context, rec *models.FeedbackRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.assign(&rec.ID, &rec.CreatedAt)
	r.feedback = append(r.feedback, *rec)
	return nil
}

func (r *fakeFormRepo) ListFeedback(context.Context, repositories.SortDirection) ([]models.FeedbackRecord, error) {
	return r.feedback, nil
}

func (r *fakeFormRepo) CreateSponsor(_ context.Context, rec *models.SponsorRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.assign(&rec.ID, &rec.CreatedAt)
	r.sponsors = append(r.sponsors, *rec)
	return nil
}

func (r *fakeFormRepo) ListSponsors(context.Context, repositories.SortDirection) ([]models.SponsorRecord, error) {
	return r.sponsors, nil
}
