package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/utdisa/isa-portal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrDecode   = errors.New("failed to decode response")
	ErrNoPhotos = models.ErrNoPhotos

	ErrFirstNameRequired = errors.New("First name is required.")
	ErrLastNameRequired  = errors.New("Last name is required.")
	ErrPhoneRequired     = errors.New("Phone number is required.")
	ErrPasswordMismatch  = errors.New("Passwords do not match.")
)

// APIError is a failure reported by the backend. Its message is shown to the user as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// EmailDomainError rejects sign-ups outside the allowed domain.
type EmailDomainError struct {
	Domain string
}

func (e *EmailDomainError) Error() string {
	return fmt.Sprintf("Please use your @%s email.", e.Domain)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
