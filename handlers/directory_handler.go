package handlers

import (
	"net/http"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/services"
)

type DirectoryHandler struct {
	directoryService services.DirectoryService
}

func NewDirectoryHandler(directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// ListEvents godoc
// @Summary      Event calendar
// @Tags         directory
// @Produce      json
// @Success      200 {array} models.Event
// @Router       /rest/v1/events [get]
func (h *DirectoryHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.directoryService.ListEvents(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respond(w, r, http.StatusOK, events)
}

// ListTeamMembers godoc
// @Summary      Team members in display order
// @Tags         directory
// @Produce      json
// @Success      200 {array} models.TeamMember
// @Router       /rest/v1/team_members [get]
func (h *DirectoryHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.directoryService.ListTeamMembers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	respond(w, r, http.StatusOK, members)
}

// Roster godoc
// @Summary      Team grouped into board, officers and logistics
// @Tags         directory
// @Produce      json
// @Success      200 {object} models.Roster
// @Router       /rest/v1/team_roster [get]
func (h *DirectoryHandler) Roster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.directoryService.Roster(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, roster)
}
