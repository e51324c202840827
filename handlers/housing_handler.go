package handlers

import (
	"errors"
	"net/http"

	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/services"
)

type HousingHandler struct {
	housingService services.HousingService
}

func NewHousingHandler(housingService services.HousingService) *HousingHandler {
	return &HousingHandler{housingService: housingService}
}

// List godoc
// @Summary      List housing listings
// @Tags         housing
// @Produce      json
// @Param        id query string false "eq.<uuid> to fetch one listing"
// @Param        order query string false "created_at.asc or created_at.desc"
// @Success      200 {array} models.HousingListing
// @Router       /rest/v1/housing_listings [get]
func (h *HousingHandler) List(w http.ResponseWriter, r *http.Request) {
	id, filtered, err := eqUUIDFilter(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if filtered {
		listing, err := h.housingService.Get(r.Context(), id)
		if errors.Is(err, services.ErrListingNotFound) {
			respond(w, r, http.StatusOK, []models.HousingListing{})
			return
		}
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, []models.HousingListing{*listing})
		return
	}

	dir, err := sortOrder(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	listings, err := h.housingService.List(r.Context(), dir)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if listings == nil {
		listings = []models.HousingListing{}
	}
	respond(w, r, http.StatusOK, listings)
}

// Create godoc
// @Summary      Publish a housing listing
// @Description  The caller becomes the owner regardless of user_id in the body.
// @Tags         housing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        listing body models.HousingListing true "Listing"
// @Success      201 {object} models.HousingListing
// @Failure      400,401 {object} map[string]string
// @Router       /rest/v1/housing_listings [post]
func (h *HousingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var listing models.HousingListing
	if err := readJSON(w, r, &listing); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.housingService.Create(r.Context(), userID, &listing)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// Delete godoc
// @Summary      Remove one of your listings
// @Tags         housing
// @Security     BearerAuth
// @Param        id query string true "eq.<uuid>"
// @Success      204
// @Failure      403,404 {object} map[string]string
// @Router       /rest/v1/housing_listings [delete]
func (h *HousingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	id, ok, err := eqUUIDFilter(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !ok {
		badRequestResponse(w, r, errors.New("delete requires an id=eq.<uuid> filter"))
		return
	}

	if err := h.housingService.Delete(r.Context(), id, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
