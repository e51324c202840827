package handlers

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
	"github.com/utdisa/isa-portal/services"
)

type fakeAuthService struct {
	signUp  func(services.CredentialsInput) (*services.AuthResult, error)
	signIn  func(services.CredentialsInput) (*services.AuthResult, error)
	signOut func(*services.Claims) error
	user    func(uuid.UUID) (*models.User, error)
	confirm func(string) error
	recover func(string) error
	reset   func(token, password string) error
}

func (f *fakeAuthService) SignUp(_ context.Context, in services.CredentialsInput) (*services.AuthResult, error) {
	return f.signUp(in)
}

func (f *fakeAuthService) SignIn(_ context.Context, in services.CredentialsInput) (*services.AuthResult, error) {
	return f.signIn(in)
}

func (f *fakeAuthService) SignOut(_ context.Context, c *services.Claims) error {
	return f.signOut(c)
}

func (f *fakeAuthService) Authenticate(context.Context, string) (*services.Claims, error) {
	return nil, services.ErrInvalidToken
}

func (f *fakeAuthService) CurrentUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	return f.user(id)
}

func (f *fakeAuthService) ConfirmEmail(_ context.Context, token string) error {
	return f.confirm(token)
}

func (f *fakeAuthService) RequestPasswordReset(_ context.Context, email string) error {
	return f.recover(email)
}

func (f *fakeAuthService) ResetPassword(_ context.Context, token, password string) error {
	return f.reset(token, password)
}

func (f *fakeAuthService) PurgeExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

type fakeHousingService struct {
	listings  []models.HousingListing
	lastDir   repositories.SortDirection
	createErr error
	deleteErr error
	createdBy uuid.UUID
	deleted   uuid.UUID
}

func (f *fakeHousingService) List(_ context.Context, dir repositories.SortDirection) ([]models.HousingListing, error) {
	f.lastDir = dir
	return f.listings, nil
}

func (f *fakeHousingService) Get(_ context.Context, id uuid.UUID) (*models.HousingListing, error) {
	for _, l := range f.listings {
		if l.ID != nil && *l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, services.ErrListingNotFound
}

func (f *fakeHousingService) Create(_ context.Context, ownerID uuid.UUID, l *models.HousingListing) (*models.HousingListing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdBy = ownerID
	id := uuid.New()
	now := time.Now()
	l.ID, l.UserID, l.CreatedAt = &id, &ownerID, &now
	return l, nil
}

func (f *fakeHousingService) Delete(_ context.Context, id, _ uuid.UUID) error {
	f.deleted = id
	return f.deleteErr
}

type fakeFormService struct {
	feedback []models.FeedbackRecord
	lastDir  repositories.SortDirection
	err      error
}

func (f *fakeFormService) SubmitAirportPickup(_ context.Context, rec *models.AirportPickupRecord) (*models.AirportPickupRecord, error) {
	return rec, f.err
}

func (f *fakeFormService) ListAirportPickups(_ context.Context, dir repositories.SortDirection) ([]models.AirportPickupRecord, error) {
	f.lastDir = dir
	return nil, f.err
}

func (f *fakeFormService) SubmitFeedback(_ context.Context, rec *models.FeedbackRecord) (*models.FeedbackRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := uuid.New()
	rec.ID = &id
	f.feedback = append(f.feedback, *rec)
	return rec, nil
}

func (f *fakeFormService) ListFeedback(_ context.Context, dir repositories.SortDirection) ([]models.FeedbackRecord, error) {
	f.lastDir = dir
	return f.feedback, f.err
}

func (f *fakeFormService) SubmitSponsor(_ context.Context, rec *models.SponsorRecord) (*models.SponsorRecord, error) {
	return rec, f.err
}

func (f *fakeFormService) ListSponsors(_ context.Context, dir repositories.SortDirection) ([]models.SponsorRecord, error) {
	f.lastDir = dir
	return nil, f.err
}

type fakeProfileService struct {
	profiles map[uuid.UUID]models.Profile
}

func (f *fakeProfileService) Create(_ context.Context, callerID uuid.UUID, p *models.Profile) (*models.Profile, error) {
	if p.UserID == uuid.Nil {
		p.UserID = callerID
	}
	if p.UserID != callerID {
		return nil, services.ErrForbiddenOperation
	}
	if _, ok := f.profiles[p.UserID]; ok {
		return nil, services.ErrProfileConflict
	}
	f.profiles[p.UserID] = *p
	return p, nil
}

func (f *fakeProfileService) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &p, nil
}

type fakeStorageService struct {
	contentType string
	size        int64
	owner       uuid.UUID
	stored      map[string]bool
	err         error
}

func (f *fakeStorageService) Upload(_ context.Context, ownerID uuid.UUID, bucket, key, contentType string, size int64, body io.Reader) (*services.StoredObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	key = ownerID.String() + "/" + key
	if f.stored == nil {
		f.stored = make(map[string]bool)
	}
	if f.stored[bucket+"/"+key] {
		return nil, services.ErrObjectExists
	}
	f.stored[bucket+"/"+key] = true
	f.contentType, f.size, f.owner = contentType, size, ownerID
	return &services.StoredObject{
		Bucket: bucket,
		Key:    key,
		URL:    "https://portal.example.com/storage/v1/object/public/" + bucket + "/" + key,
	}, nil
}

func (f *fakeStorageService) ObjectURL(bucket, key string) (string, error) {
	if bucket != "housing-photos" {
		return "", services.ErrBucketNotFound
	}
	return "https://cdn.example.com/" + bucket + "/" + key, nil
}

func (f *fakeStorageService) CheckOwnedURL(uuid.UUID, string) error {
	return nil
}

func (f *fakeStorageService) RemoveOwned(context.Context, uuid.UUID, string) error {
	return nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}
