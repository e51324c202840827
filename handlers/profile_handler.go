package handlers

import (
	"errors"
	"net/http"

	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Create godoc
// @Summary      Create your profile
// @Tags         profiles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profile body models.Profile true "Profile"
// @Success      201 {object} models.Profile
// @Failure      403,409 {object} map[string]string
// @Router       /rest/v1/profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var profile models.Profile
	if err := readJSON(w, r, &profile); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.profileService.Create(r.Context(), userID, &profile)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// List godoc
// @Summary      Look up a profile by user
// @Tags         profiles
// @Security     BearerAuth
// @Produce      json
// @Param        user_id query string true "eq.<uuid>"
// @Success      200 {array} models.Profile
// @Router       /rest/v1/profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok, err := eqUUIDFilter(r, "user_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !ok {
		badRequestResponse(w, r, errors.New("profiles require a user_id=eq.<uuid> filter"))
		return
	}

	profile, err := h.profileService.GetByUserID(r.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		respond(w, r, http.StatusOK, []models.Profile{})
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, []models.Profile{*profile})
}
