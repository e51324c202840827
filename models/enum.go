package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// enumTable is an explicit two-way mapping between an enum and its wire string.
type enumTable[T comparable] struct {
	name     string
	toWire   map[T]string
	fromWire map[string]T
}

func newEnumTable[T comparable](name string, pairs map[T]string) enumTable[T] {
	t := enumTable[T]{
		name:     name,
		toWire:   make(map[T]string, len(pairs)),
		fromWire: make(map[string]T, len(pairs)),
	}
	for v, wire := range pairs {
		t.toWire[v] = wire
		t.fromWire[wire] = v
	}
	return t
}

func (t enumTable[T]) wire(v T) string {
	return t.toWire[v]
}

func (t enumTable[T]) parse(s string) (T, error) {
	v, ok := t.fromWire[s]
	if !ok {
		var zero T
		return zero, fmt.Errorf("invalid %s %q", t.name, s)
	}
	return v, nil
}

func (t enumTable[T]) marshal(v T) ([]byte, error) {
	wire, ok := t.toWire[v]
	if !ok {
		return nil, fmt.Errorf("invalid %s value %v", t.name, v)
	}
	return json.Marshal(wire)
}

func (t enumTable[T]) unmarshal(data []byte, dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s must be a string: %w", t.name, err)
	}
	v, err := t.parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (t enumTable[T]) value(v T) (driver.Value, error) {
	wire, ok := t.toWire[v]
	if !ok {
		return nil, fmt.Errorf("invalid %s value %v", t.name, v)
	}
	return wire, nil
}

func (t enumTable[T]) scan(src any, dst *T) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", src, t.name)
	}
	parsed, err := t.parse(s)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// FeedbackCategory. The zero value is General.
type FeedbackCategory int

const (
	CategoryGeneral FeedbackCategory = iota
	CategoryEvent
	CategorySuggestion
	CategoryTechnical
	CategoryOther
)

var AllFeedbackCategories = []FeedbackCategory{
	CategoryGeneral, CategoryEvent, CategorySuggestion, CategoryTechnical, CategoryOther,
}

var feedbackCategoryWire = newEnumTable("feedback category", map[FeedbackCategory]string{
	CategoryGeneral:    "General",
	CategoryEvent:      "Event",
	CategorySuggestion: "Suggestion",
	CategoryTechnical:  "Technical",
	CategoryOther:      "Other",
})

var feedbackCategoryLabels = map[FeedbackCategory]string{
	CategoryGeneral:    "General",
	CategoryEvent:      "Event",
	CategorySuggestion: "Suggestion",
	CategoryTechnical:  "Technical Issue",
	CategoryOther:      "Other",
}

func ParseFeedbackCategory(s string) (FeedbackCategory, error) { return feedbackCategoryWire.parse(s) }
func (c FeedbackCategory) WireValue() string { return feedbackCategoryWire.wire(c) }
func (c FeedbackCategory) Label() string { return feedbackCategoryLabels[c] }
func (c FeedbackCategory) MarshalJSON() ([]byte, error) { return feedbackCategoryWire.marshal(c) }
func (c *FeedbackCategory) UnmarshalJSON(b []byte) error { return feedbackCategoryWire.unmarshal(b, c) }
func (c FeedbackCategory) Value() (driver.Value, error) { return feedbackCategoryWire.value(c) }
func (c *FeedbackCategory) Scan(src any) error { return feedbackCategoryWire.scan(src, c) }

// SponsorshipTier. The zero value is Gold.
type SponsorshipTier int

const (
	TierGold SponsorshipTier = iota
	TierPlatinum
	TierSilver
	TierBronze
)

var AllSponsorshipTiers = []SponsorshipTier{TierPlatinum, TierGold, TierSilver, TierBronze}

var sponsorshipTierWire = newEnumTable("sponsorship tier", map[SponsorshipTier]string{
	TierPlatinum: "Platinum",
	TierGold:     "Gold",
	TierSilver:   "Silver",
	TierBronze:   "Bronze",
})

type tierInfo struct {
	label    string
	amount   string
	benefits string
}

var sponsorshipTiers = map[SponsorshipTier]tierInfo{
	TierPlatinum: {"Platinum", "$2000+", "Logo on all materials, VIP event access, Speaking opportunity, Premium booth space"},
	TierGold:     {"Gold", "$1000", "Logo on all materials, VIP event access, Premium booth space"},
	TierSilver:   {"Silver", "$500", "Logo on digital materials, Event booth space"},
	TierBronze:   {"Bronze", "$250", "Logo on digital materials"},
}

func ParseSponsorshipTier(s string) (SponsorshipTier, error) { return sponsorshipTierWire.parse(s) }
func (t SponsorshipTier) WireValue() string { return sponsorshipTierWire.wire(t) }
func (t SponsorshipTier) Label() string { return sponsorshipTiers[t].label }
func (t SponsorshipTier) Amount() string { return sponsorshipTiers[t].amount }
func (t SponsorshipTier) Benefits() string { return sponsorshipTiers[t].benefits }
func (t SponsorshipTier) MarshalJSON() ([]byte, error) { return sponsorshipTierWire.marshal(t) }
func (t *SponsorshipTier) UnmarshalJSON(b []byte) error { return sponsorshipTierWire.unmarshal(b, t) }
func (t SponsorshipTier) Value() (driver.Value, error) { return sponsorshipTierWire.value(t) }
func (t *SponsorshipTier) Scan(src any) error { return sponsorshipTierWire.scan(src, t) }

// Gender. The zero value is "Prefer not to say".
type Gender int

const (
	GenderPreferNotToSay Gender = iota
	GenderMale
	GenderFemale
)

var AllGenders = []Gender{GenderMale, GenderFemale, GenderPreferNotToSay}

var genderWire = newEnumTable("gender", map[Gender]string{
	GenderMale:           "Male",
	GenderFemale:         "Female",
	GenderPreferNotToSay: "Prefer not to say",
})

func ParseGender(s string) (Gender, error) { return genderWire.parse(s) }
func (g Gender) WireValue() string { return genderWire.wire(g) }
func (g Gender) Label() string { return genderWire.wire(g) }
func (g Gender) MarshalJSON() ([]byte, error) { return genderWire.marshal(g) }
func (g *Gender) UnmarshalJSON(b []byte) error { return genderWire.unmarshal(b, g) }
func (g Gender) Value() (driver.Value, error) { return genderWire.value(g) }
func (g *Gender) Scan(src any) error { return genderWire.scan(src, g) }

// DallasAirport. The zero value is DFW.
type DallasAirport int

const (
	AirportDFW DallasAirport = iota
	AirportDAL
)

var AllDallasAirports = []DallasAirport{AirportDFW, AirportDAL}

var dallasAirportWire = newEnumTable("arrival airport", map[DallasAirport]string{
	AirportDFW: "DFW",
	AirportDAL: "DAL",
})

var dallasAirportLabels = map[DallasAirport]string{
	AirportDFW: "Dallas/Fort Worth International Airport (DFW)",
	AirportDAL: "Dallas Love Field Airport (DAL)",
}

func ParseDallasAirport(s string) (DallasAirport, error) { return dallasAirportWire.parse(s) }
func (a DallasAirport) WireValue() string { return dallasAirportWire.wire(a) }
func (a DallasAirport) Label() string { return dallasAirportLabels[a] }
func (a DallasAirport) MarshalJSON() ([]byte, error) { return dallasAirportWire.marshal(a) }
func (a *DallasAirport) UnmarshalJSON(b []byte) error { return dallasAirportWire.unmarshal(b, a) }
func (a DallasAirport) Value() (driver.Value, error) { return dallasAirportWire.value(a) }
func (a *DallasAirport) Scan(src any) error { return dallasAirportWire.scan(src, a) }
