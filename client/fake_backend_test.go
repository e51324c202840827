package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

type insertCall struct {
	Table string
	Row   map[string]any
}

type selectCall struct {
	Table string
	Query Query
}

type deleteCall struct {
	Table   string
	Filters []Filter
}

type uploadCall struct {
	Bucket      string
	Key         string
	ContentType string
}

// fakeBackend is an in-memory Backend that records every call.
type fakeBackend struct {
	mu sync.Mutex

	user       *AuthUser
	sessionErr error
	signInErr  error
	signUpUser *AuthUser
	signUpErr  error
	signOutErr error
	resetErr   error
	resetEmail string

	rows      map[string][]json.RawMessage
	insertErr map[string]error
	selectErr map[string]error
	deleteErr error
	uploadErr func(data []byte) error

	inserts []insertCall
	selects []selectCall
	deletes []deleteCall
	uploads []uploadCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rows:      make(map[string][]json.RawMessage),
		insertErr: make(map[string]error),
		selectErr: make(map[string]error),
	}
}

// signedUpUserID is the id the fake hands to every new account.
const signedUpUserID = "3b0d6a52-64d4-4c43-8f0e-2f8a8d0f6c19"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeBackend) Auth() Auth       { return f }
func (f *fakeBackend) Tables() Tables   { return f }
func (f *fakeBackend) Storage() Storage { return f }

func (f *fakeBackend) Session(ctx context.Context) (*AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.user, nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.user = &AuthUser{ID: "user-1", Email: email}
	return f.user, nil
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	if f.signUpUser != nil {
		f.user = f.signUpUser
		return f.signUpUser, nil
	}
	f.user = &AuthUser{ID: signedUpUserID, Email: email}
	return f.user, nil
}

// SignOut keeps the user on failure so tests see the worst case.
func (f *fakeBackend) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.user = nil
	return nil
}

func (f *fakeBackend) ResetPasswordForEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetEmail = email
	return f.resetErr
}

func (f *fakeBackend) Insert(ctx context.Context, table string, row any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	f.inserts = append(f.inserts, insertCall{Table: table, Row: fields})

	if err := f.insertErr[table]; err != nil {
		return nil, err
	}
	f.rows[table] = append(f.rows[table], raw)
	return raw, nil
}

func (f *fakeBackend) Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selects = append(f.selects, selectCall{Table: table, Query: q})

	if err := f.selectErr[table]; err != nil {
		return nil, err
	}
	var out []json.RawMessage
	for _, raw := range f.rows[table] {
		if matches(raw, q.Filters) {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (f *fakeBackend) Delete(ctx context.Context, table string, filters ...Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, deleteCall{Table: table, Filters: filters})
	return f.deleteErr
}

func (f *fakeBackend) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, uploadCall{Bucket: bucket, Key: key, ContentType: contentType})
	fail := f.uploadErr
	f.mu.Unlock()

	if fail != nil {
		if err := fail(data); err != nil {
			return "", err
		}
	}
	return f.PublicURL(bucket, key), nil
}

func (f *fakeBackend) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://backend.test/storage/v1/object/public/%s/%s", bucket, key)
}

func (f *fakeBackend) insertsInto(table string) []insertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []insertCall
	for _, c := range f.inserts {
		if c.Table == table {
			out = append(out, c)
		}
	}
	return out
}

func matches(raw json.RawMessage, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for _, flt := range filters {
		if fmt.Sprint(fields[flt.Column]) != flt.Value {
			return false
		}
	}
	return true
}
