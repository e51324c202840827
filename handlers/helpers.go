package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/repositories"
	"github.com/utdisa/isa-portal/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			// enum and date types report their own messages
			return fmt.Errorf("body contains an invalid value: %w", err)
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write JSON response", slog.Any("error", err))
	}
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP turns service errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrListingNotFound),
		errors.Is(err, services.ErrBucketNotFound):
		errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrProfileConflict),
		errors.Is(err, services.ErrObjectExists):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrEmailDomainNotAllowed),
		errors.Is(err, services.ErrInvalidToken):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())

	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrListingNotOwner),
		errors.Is(err, services.ErrObjectNotOwned):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrUnsupportedMediaType):
		errorResponse(w, r, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, services.ErrPayloadTooLarge):
		errorResponse(w, r, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

// eqFilter reads a column=eq.<value> query parameter.
func eqFilter(r *http.Request, column string) (string, bool, error) {
	raw := r.URL.Query().Get(column)
	if raw == "" {
		return "", false, nil
	}
	value, ok := strings.CutPrefix(raw, "eq.")
	if !ok || value == "" {
		return "", false, fmt.Errorf("filter on %s must use eq.<value>", column)
	}
	return value, true, nil
}

func eqUUIDFilter(r *http.Request, column string) (uuid.UUID, bool, error) {
	value, ok, err := eqFilter(r, column)
	if err != nil || !ok {
		return uuid.Nil, ok, err
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("filter on %s must be a UUID", column)
	}
	return id, true, nil
}

// sortOrder reads order=created_at.<asc|desc>; rows are newest first by default.
func sortOrder(r *http.Request) (repositories.SortDirection, error) {
	raw := r.URL.Query().Get("order")
	if raw == "" {
		return repositories.NewestFirst, nil
	}
	column, dir, _ := strings.Cut(raw, ".")
	if column != "created_at" {
		return repositories.NewestFirst, fmt.Errorf("cannot order by %q", column)
	}
	switch dir {
	case "", "desc":
		return repositories.NewestFirst, nil
	case "asc":
		return repositories.OldestFirst, nil
	default:
		return repositories.NewestFirst, fmt.Errorf("unknown sort direction %q", dir)
	}
}
