// Package client holds the app-side core: session state, form submission and the
// housing marketplace. It talks to the hosted backend only through Backend.
package client

import (
	"context"
	"encoding/json"
	"time"
)

// AuthUser is the user record returned by the auth endpoints.
type AuthUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Role             string     `json:"role,omitempty"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
}

type Auth interface {
	// Session returns the signed-in user, or nil when there is none.
	Session(ctx context.Context) (*AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*AuthUser, error)
	SignUp(ctx context.Context, email, password string) (*AuthUser, error)
	// SignOut drops local credentials even when the remote call fails.
	SignOut(ctx context.Context) error
	ResetPasswordForEmail(ctx context.Context, email string) error
}

// Filter is an equality filter on one column.
type Filter struct {
	Column string
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}

type Query struct {
	Filters   []Filter
	OrderBy   string
	Ascending bool
}

// NewestFirst orders rows by created_at descending.
func NewestFirst(filters ...Filter) Query {
	return Query{Filters: filters, OrderBy: "created_at", Ascending: false}
}

type Tables interface {
	// Insert stores row and returns the stored representation.
	Insert(ctx context.Context, table string, row any) (json.RawMessage, error)
	Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error)
	Delete(ctx context.Context, table string, filters ...Filter) error
}

type Storage interface {
	// Upload stores data under bucket/key and returns its public URL.
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
	PublicURL(bucket, key string) string
}

// Backend is the hosted service the client core runs against.
type Backend interface {
	Auth() Auth
	Tables() Tables
	Storage() Storage
}

func decodeRow[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeRows[T any](rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
