package models

import (
	"strings"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Position    string    `json:"position" db:"position"`
	Email       string    `json:"email" db:"email"`
	LinkedInURL *string   `json:"linkedin_url,omitempty" db:"linkedin_url"`
	Bio         string    `json:"bio" db:"bio"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
}

// ExecutivePositions lists the titles that make up the executive board, in display order.
var ExecutivePositions = []string{
	"President",
	"Vice President",
	"General Secretary",
	"Treasurer",
	"Public Relations Officer",
}

const eventsLogisticsMarker = "Events & Logistics"

// Roster is the team split into the three sections shown on the team page.
type Roster struct {
	ExecutiveBoard  []TeamMember `json:"executive_board"`
	Officers        []TeamMember `json:"officers"`
	EventsLogistics []TeamMember `json:"events_logistics"`
}

func isExecutive(position string) bool {
	for _, p := range ExecutivePositions {
		if p == position {
			return true
		}
	}
	return false
}

// GroupRoster splits members into sections, keeping their relative order.
func GroupRoster(members []TeamMember) Roster {
	roster := Roster{
		ExecutiveBoard:  []TeamMember{},
		Officers:        []TeamMember{},
		EventsLogistics: []TeamMember{},
	}
	for _, m := range members {
		switch {
		case isExecutive(m.Position):
			roster.ExecutiveBoard = append(roster.ExecutiveBoard, m)
		case strings.Contains(m.Position, eventsLogisticsMarker):
			roster.EventsLogistics = append(roster.EventsLogistics, m)
		default:
			roster.Officers = append(roster.Officers, m)
		}
	}
	return roster
}

// FilterByPosition returns members whose position matches title, ignoring case.
func FilterByPosition(members []TeamMember, title string) []TeamMember {
	result := make([]TeamMember, 0)
	for _, m := range members {
		if strings.EqualFold(strings.TrimSpace(m.Position), strings.TrimSpace(title)) {
			result = append(result, m)
		}
	}
	return result
}
