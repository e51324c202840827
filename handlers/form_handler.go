package handlers

import (
	"context"
	"net/http"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
	"github.com/utdisa/isa-portal/services"
)

type FormHandler struct {
	formService services.FormService
}

func NewFormHandler(formService services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// submitForm decodes a record, passes it to submit and answers 201 with the stored row.
func submitForm[T any](w http.ResponseWriter, r *http.Request, submit func(context.Context, *T) (*T, error)) {
	var rec T
	if err := readJSON(w, r, &rec); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stored, err := submit(r.Context(), &rec)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, stored)
}

func listForms[T any](w http.ResponseWriter, r *http.Request, list func(context.Context, repositories.SortDirection) ([]T, error)) {
	dir, err := sortOrder(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	recs, err := list(r.Context(), dir)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if recs == nil {
		recs = []T{}
	}
	respond(w, r, http.StatusOK, recs)
}

// SubmitAirportPickup godoc
// @Summary      Request an airport pickup
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form body models.AirportPickupRecord true "Pickup request"
// @Success      201 {object} models.AirportPickupRecord
// @Failure      400 {object} map[string]string
// @Router       /rest/v1/airport_pickup_forms [post]
func (h *FormHandler) SubmitAirportPickup(w http.ResponseWriter, r *http.Request) {
	submitForm[models.AirportPickupRecord](w, r, h.formService.SubmitAirportPickup)
}

// ListAirportPickups godoc
// @Summary      List airport pickup requests
// @Tags         forms
// @Security     BearerAuth
// @Produce      json
// @Param        order query string false "created_at.asc or created_at.desc"
// @Success      200 {array} models.AirportPickupRecord
// @Failure      401,403 {object} map[string]string
// @Router       /rest/v1/airport_pickup_forms [get]
func (h *FormHandler) ListAirportPickups(w http.ResponseWriter, r *http.Request) {
	listForms[models.AirportPickupRecord](w, r, h.formService.ListAirportPickups)
}

// SubmitFeedback godoc
// @Summary      Send feedback
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form body models.FeedbackRecord true "Feedback"
// @Success      201 {object} models.FeedbackRecord
// @Failure      400 {object} map[string]string
// @Router       /rest/v1/feedback_forms [post]
func (h *FormHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	submitForm[models.FeedbackRecord](w, r, h.formService.SubmitFeedback)
}

// ListFeedback godoc
// @Summary      List feedback
// @Tags         forms
// @Security     BearerAuth
// @Produce      json
// @Param        order query string false "created_at.asc or created_at.desc"
// @Success      200 {array} models.FeedbackRecord
// @Router       /rest/v1/feedback_forms [get]
func (h *FormHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	listForms[models.FeedbackRecord](w, r, h.formService.ListFeedback)
}

// SubmitSponsor godoc
// @Summary      Send a sponsorship inquiry
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form body models.SponsorRecord true "Sponsor inquiry"
// @Success      201 {object} models.SponsorRecord
// @Failure      400 {object} map[string]string
// @Router       /rest/v1/sponsor_forms [post]
func (h *FormHandler) SubmitSponsor(w http.ResponseWriter, r *http.Request) {
	submitForm[models.SponsorRecord](w, r, h.formService.SubmitSponsor)
}

// ListSponsors godoc
// @Summary      List sponsorship inquiries
// @Tags         forms
// @Security     BearerAuth
// @Produce      json
// @Param        order query string false "created_at.asc or created_at.desc"
// @Success      200 {array} models.SponsorRecord
// @Router       /rest/v1/sponsor_forms [get]
func (h *FormHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	listForms[models.SponsorRecord](w, r, h.formService.ListSponsors)
}
