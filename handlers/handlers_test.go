package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/realtime"
	"github.com/utdisa/isa-portal/repositories"
	"github.com/utdisa/isa-portal/services"
)

func asUser(r *http.Request, id uuid.UUID) *http.Request {
	claims := &services.Claims{
		Email:            "user@utdallas.edu",
		Role:             models.RoleStudent,
		SessionID:        uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
	}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrListingNotFound), http.StatusNotFound},
		{services.ErrBucketNotFound, http.StatusNotFound},
		{services.ErrUserEmailConflict, http.StatusConflict},
		{services.ErrProfileConflict, http.StatusConflict},
		{services.ErrObjectExists, http.StatusConflict},
		{fmt.Errorf("%w: rent must not be negative", services.ErrValidationFailed), http.StatusBadRequest},
		{services.ErrPasswordTooShort, http.StatusBadRequest},
		{services.ErrEmailDomainNotAllowed, http.StatusBadRequest},
		{services.ErrInvalidToken, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrAuthenticationFailed, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrListingNotOwner, http.StatusForbidden},
		{services.ErrObjectNotOwned, http.StatusForbidden},
		{services.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{services.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{services.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	assert.NotContains(t, decodeError(t, rec), "pq:")
}

func TestSortOrder(t *testing.T) {
	tests := []struct {
		query   string
		want    repositories.SortDirection
		wantErr bool
	}{
		{"", repositories.NewestFirst, false},
		{"order=created_at.desc", repositories.NewestFirst, false},
		{"order=created_at.asc", repositories.OldestFirst, false},
		{"order=created_at", repositories.NewestFirst, false},
		{"order=rent.asc", repositories.NewestFirst, true},
		{"order=created_at.sideways", repositories.NewestFirst, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			dir, err := sortOrder(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dir)
		})
	}
}

func TestEqUUIDFilter(t *testing.T) {
	id := uuid.New()

	got, ok, err := eqUUIDFilter(httptest.NewRequest(http.MethodGet, "/?id=eq."+id.String(), nil), "id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok, err = eqUUIDFilter(httptest.NewRequest(http.MethodGet, "/", nil), "id")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = eqUUIDFilter(httptest.NewRequest(http.MethodGet, "/?id="+id.String(), nil), "id")
	assert.Error(t, err)

	_, _, err = eqUUIDFilter(httptest.NewRequest(http.MethodGet, "/?id=eq.42", nil), "id")
	assert.Error(t, err)
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","admin":true}`))
	var dst services.CredentialsInput
	err := readJSON(httptest.NewRecorder(), req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestAuthHandlerSignUp(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAuthService{
		signUp: func(in services.CredentialsInput) (*services.AuthResult, error) {
			if in.Email == "taken@utdallas.edu" {
				return nil, services.ErrUserEmailConflict
			}
			return &services.AuthResult{
				User:        &models.User{ID: userID, Email: in.Email, Role: models.RoleStudent, CreatedAt: time.Now()},
				AccessToken: "token-123",
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/signup",
		strings.NewReader(`{"email":"new@utdallas.edu","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token-123", body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, userID.String(), body.User.ID)
	assert.Nil(t, body.User.EmailConfirmedAt)
	assert.InDelta(t, 3600, body.ExpiresIn, 5)

	rec = httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/signup",
		strings.NewReader(`{"email":"taken@utdallas.edu","password":"secret1"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerToken(t *testing.T) {
	svc := &fakeAuthService{
		signIn: func(services.CredentialsInput) (*services.AuthResult, error) {
			return nil, services.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	t.Run("wrong grant type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Token(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/token?grant_type=refresh_token",
			strings.NewReader(`{"email":"a@utdallas.edu","password":"x"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Token(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/token?grant_type=password",
			strings.NewReader(`{"email":"a@utdallas.edu"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Token(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/token?grant_type=password",
			strings.NewReader(`{"email":"a@utdallas.edu","password":"wrong-one"}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandlerLogoutAndUser(t *testing.T) {
	userID := uuid.New()
	var signedOut *services.Claims
	svc := &fakeAuthService{
		signOut: func(c *services.Claims) error { signedOut = c; return nil },
		user: func(id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "user@utdallas.edu", Role: models.RoleStudent}, nil
		},
	}
	h := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	h.User(rec, asUser(httptest.NewRequest(http.MethodGet, "/auth/v1/user", nil), userID))
	require.Equal(t, http.StatusOK, rec.Code)
	var user authUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, userID.String(), user.ID)

	rec = httptest.NewRecorder()
	h.Logout(rec, asUser(httptest.NewRequest(http.MethodPost, "/auth/v1/logout", nil), userID))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, signedOut)
	assert.Equal(t, userID.String(), signedOut.Subject)

	rec = httptest.NewRecorder()
	h.User(rec, httptest.NewRequest(http.MethodGet, "/auth/v1/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerRecoverResetVerify(t *testing.T) {
	var recovered, resetToken, confirmed string
	svc := &fakeAuthService{
		recover: func(email string) error { recovered = email; return nil },
		reset: func(token, _ string) error {
			resetToken = token
			if token == "stale" {
				return services.ErrInvalidToken
			}
			return nil
		},
		confirm: func(token string) error { confirmed = token; return nil },
	}
	h := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	h.Recover(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/recover", strings.NewReader(`{"email":"x@utdallas.edu"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
	assert.Equal(t, "x@utdallas.edu", recovered)

	rec = httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/reset", strings.NewReader(`{"token":"stale","password":"another1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "stale", resetToken)

	rec = httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodGet, "/auth/v1/verify?token=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", confirmed)

	rec = httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodGet, "/auth/v1/verify", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHousingHandlerList(t *testing.T) {
	id := uuid.New()
	svc := &fakeHousingService{listings: []models.HousingListing{{ID: &id, ApartmentName: "Northside"}}}
	h := NewHousingHandler(svc)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/housing_listings?select=*&order=created_at.asc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, repositories.OldestFirst, svc.lastDir)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/housing_listings?id=eq."+id.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var one []models.HousingListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	require.Len(t, one, 1)
	assert.Equal(t, "Northside", one[0].ApartmentName)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/housing_listings?id=eq."+uuid.NewString(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHousingHandlerCreate(t *testing.T) {
	owner := uuid.New()
	svc := &fakeHousingService{}
	h := NewHousingHandler(svc)
	body := `{"apartment_name":"Canyon Creek","apartment_type":"2b2b","availability":"room","rent":650,"lease_type":"new","is_temporary":false,"photo_urls":["https://x/1.jpg"]}`

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/rest/v1/housing_listings", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, asUser(httptest.NewRequest(http.MethodPost, "/rest/v1/housing_listings", strings.NewReader(body)), owner))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, owner, svc.createdBy)

	svc.createErr = fmt.Errorf("%w: %w", services.ErrValidationFailed, models.ErrNoPhotos)
	rec = httptest.NewRecorder()
	h.Create(rec, asUser(httptest.NewRequest(http.MethodPost, "/rest/v1/housing_listings", strings.NewReader(body)), owner))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHousingHandlerDelete(t *testing.T) {
	caller := uuid.New()
	id := uuid.New()

	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"owner", "?id=eq." + id.String(), nil, http.StatusNoContent},
		{"not owner", "?id=eq." + id.String(), services.ErrListingNotOwner, http.StatusForbidden},
		{"missing", "?id=eq." + id.String(), services.ErrListingNotFound, http.StatusNotFound},
		{"no filter", "", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeHousingService{deleteErr: tt.err}
			rec := httptest.NewRecorder()
			NewHousingHandler(svc).Delete(rec, asUser(httptest.NewRequest(http.MethodDelete, "/rest/v1/housing_listings"+tt.query, nil), caller))
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, id, svc.deleted)
			}
		})
	}
}

func TestFormHandler(t *testing.T) {
	svc := &fakeFormService{}
	h := NewFormHandler(svc)

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, httptest.NewRequest(http.MethodPost, "/rest/v1/feedback_forms",
		strings.NewReader(`{"name":"Asha","email":"asha@utdallas.edu","category":"Event","message":"Great Diwali night"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.feedback, 1)
	assert.Equal(t, models.CategoryEvent, svc.feedback[0].Category)

	rec = httptest.NewRecorder()
	h.SubmitFeedback(rec, httptest.NewRequest(http.MethodPost, "/rest/v1/feedback_forms",
		strings.NewReader(`{"name":"Asha","category":"Gossip"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ListFeedback(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/feedback_forms?order=created_at.asc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, repositories.OldestFirst, svc.lastDir)

	rec = httptest.NewRecorder()
	h.ListSponsors(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/sponsor_forms", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	svc.err = fmt.Errorf("%w: email is required", services.ErrValidationFailed)
	rec = httptest.NewRecorder()
	h.SubmitSponsor(rec, httptest.NewRequest(http.MethodPost, "/rest/v1/sponsor_forms",
		strings.NewReader(`{"company_name":"Acme"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileHandler(t *testing.T) {
	me := uuid.New()
	svc := &fakeProfileService{profiles: map[uuid.UUID]models.Profile{}}
	h := NewProfileHandler(svc)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/profiles?user_id=eq."+me.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Create(rec, asUser(httptest.NewRequest(http.MethodPost, "/rest/v1/profiles",
		strings.NewReader(`{"full_name":"Priya Shah"}`)), me))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, asUser(httptest.NewRequest(http.MethodPost, "/rest/v1/profiles",
		strings.NewReader(`{"full_name":"Priya Shah"}`)), me))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, asUser(httptest.NewRequest(http.MethodPost, "/rest/v1/profiles",
		strings.NewReader(fmt.Sprintf(`{"user_id":%q}`, uuid.NewString()))), me))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/profiles?user_id=eq."+me.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var profiles []models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	require.NotNil(t, profiles[0].FullName)
	assert.Equal(t, "Priya Shah", *profiles[0].FullName)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/rest/v1/profiles", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func storageRouter(h *StorageHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/storage/v1/object/public/{bucket}/*", h.Public)
	r.Post("/storage/v1/object/{bucket}/*", h.Upload)
	return r
}

func TestStorageHandlerUpload(t *testing.T) {
	svc := &fakeStorageService{}
	router := storageRouter(NewStorageHandler(svc))
	caller := uuid.New()

	req := asUser(httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/abc/1.jpg", strings.NewReader("jpeg-bytes")), caller)
	req.Header.Set("Content-Type", "image/jpeg; charset=binary")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", svc.contentType)
	assert.EqualValues(t, len("jpeg-bytes"), svc.size)
	assert.Equal(t, caller, svc.owner)

	var obj services.StoredObject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
	assert.Equal(t, caller.String()+"/abc/1.jpg", obj.Key)

	req = asUser(httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/abc/2.jpg", strings.NewReader("x")), caller)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = asUser(httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/big.jpg", strings.NewReader("x")), caller)
	req.Header.Set("Content-Type", "image/jpeg")
	req.ContentLength = services.MaxUploadSize + 1
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStorageHandlerUploadExistingKey(t *testing.T) {
	svc := &fakeStorageService{}
	router := storageRouter(NewStorageHandler(svc))
	caller := uuid.New()

	upload := func(body string) *httptest.ResponseRecorder {
		req := asUser(httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/listing-1.jpg", strings.NewReader(body)), caller)
		req.Header.Set("Content-Type", "image/jpeg")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, upload("first").Code)
	rec := upload("second")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, services.ErrObjectExists.Error(), decodeError(t, rec))
	assert.EqualValues(t, len("first"), svc.size)
}

func TestStorageHandlerUploadRequiresCaller(t *testing.T) {
	svc := &fakeStorageService{}
	router := storageRouter(NewStorageHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/1.jpg", strings.NewReader("jpeg"))
	req.Header.Set("Content-Type", "image/jpeg")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.stored)
}

func TestStorageHandlerUploadUnavailable(t *testing.T) {
	router := storageRouter(NewStorageHandler(&fakeStorageService{err: services.ErrStorageUnavailable}))

	req := asUser(httptest.NewRequest(http.MethodPost, "/storage/v1/object/housing-photos/1.png", strings.NewReader("png")), uuid.New())
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStorageHandlerPublic(t *testing.T) {
	router := storageRouter(NewStorageHandler(&fakeStorageService{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/v1/object/public/housing-photos/abc/1.jpg", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/housing-photos/abc/1.jpg", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/v1/object/public/secrets/key", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}).Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("dial tcp: refused")}).Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(nil).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://isa.utdallas.edu"})

	req := httptest.NewRequest(http.MethodGet, "/realtime/v1/housing_listings", nil)
	assert.True(t, check(req), "native clients send no Origin")

	req.Header.Set("Origin", "https://isa.utdallas.edu")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}

func TestRealtimeHandlerJoinsRoom(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Get("/realtime/v1/{room}", NewRealtimeHandler(hub, []string{"*"}, logger).ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/realtime/v1/housing_listings", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize(realtime.RoomHousingListings) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(realtime.RoomHousingListings, realtime.Message{Type: realtime.TypeListingCreated, Room: realtime.RoomHousingListings})
	var msg realtime.Message
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, realtime.TypeListingCreated, msg.Type)
}
