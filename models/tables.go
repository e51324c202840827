package models

// Logical table and bucket names shared by the client and the server.
const (
	TableAirportPickupForms = "airport_pickup_forms"
	TableFeedbackForms      = "feedback_forms"
	TableSponsorForms       = "sponsor_forms"
	TableHousingListings    = "housing_listings"
	TableProfiles           = "profiles"
	TableEvents             = "events"
	TableTeamMembers        = "team_members"

	BucketHousingPhotos = "housing-photos"
)
