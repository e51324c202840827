package services

import "errors"

var (
	// General
	ErrNotFound           = errors.New("resource not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrForbiddenOperation = errors.New("operation forbidden")

	// Auth
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrInvalidToken          = errors.New("token is invalid or expired")
	ErrUserEmailConflict     = errors.New("user with this email already exists")
	ErrEmailDomainNotAllowed = errors.New("email domain is not allowed")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters long")

	// Profiles
	ErrProfileConflict = errors.New("profile already exists")

	// Housing
	ErrListingNotFound = errors.New("housing listing not found")
	ErrListingNotOwner = errors.New("only the owner can delete this listing")

	// Storage
	ErrStorageUnavailable   = errors.New("object storage is not configured")
	ErrBucketNotFound       = errors.New("bucket not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrObjectExists         = errors.New("an object with this key already exists")
	ErrObjectNotOwned       = errors.New("object belongs to another user")
)
