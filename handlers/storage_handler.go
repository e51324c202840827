package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/services"
)

type StorageHandler struct {
	storageService services.StorageService
}

func NewStorageHandler(storageService services.StorageService) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

// Upload godoc
// @Summary      Upload an image
// @Description  The raw request body is stored under the caller's prefix, <bucket>/<user id>/<key>.
// @Description  Only image content types up to 10 MiB are accepted and existing keys are never replaced.
// @Tags         storage
// @Security     BearerAuth
// @Accept       image/jpeg,image/png,image/webp,image/heic,image/gif
// @Produce      json
// @Param        bucket path string true "bucket name"
// @Param        key path string true "object key"
// @Success      200 {object} services.StoredObject
// @Failure      401,404,409,413,415 {object} map[string]string
// @Router       /storage/v1/object/{bucket}/{key} [post]
func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	bucket := chi.URLParam(r, "bucket")
	key := chi.URLParam(r, "*")

	contentType := r.Header.Get("Content-Type")
	if mediaType, _, found := strings.Cut(contentType, ";"); found {
		contentType = mediaType
	}
	if contentType == "" {
		badRequestResponse(w, r, errors.New("Content-Type header is required"))
		return
	}
	if r.ContentLength > services.MaxUploadSize {
		mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: limit is %d bytes", services.ErrPayloadTooLarge, services.MaxUploadSize))
		return
	}

	// one byte past the limit tells an oversized body apart from an exact fit
	body, err := io.ReadAll(io.LimitReader(r.Body, services.MaxUploadSize+1))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to read upload body: %w", err))
		return
	}

	obj, err := h.storageService.Upload(r.Context(), userID, bucket, key, contentType, int64(len(body)), bytes.NewReader(body))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, obj)
}

// Public godoc
// @Summary      Fetch a public object
// @Tags         storage
// @Param        bucket path string true "bucket name"
// @Param        key path string true "object key"
// @Success      302
// @Failure      404 {object} map[string]string
// @Router       /storage/v1/object/public/{bucket}/{key} [get]
func (h *StorageHandler) Public(w http.ResponseWriter, r *http.Request) {
	target, err := h.storageService.ObjectURL(chi.URLParam(r, "bucket"), chi.URLParam(r, "*"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
