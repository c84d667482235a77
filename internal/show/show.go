package show

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Type classifies a show by the kennel-club category it is licensed as.
type Type string

const (
	TypeChampionship Type = "Championship"
	TypeOpen         Type = "Open"
	TypePremierOpen  Type = "Premier Open"
	TypeLimited      Type = "Limited"
	TypeUnknown      Type = "Unknown"
)

// ParseType normalizes free text into a Type. Anything unrecognized maps to
// TypeUnknown rather than failing; an unknown show type simply scores no points.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "championship":
		return TypeChampionship
	case "premier open":
		return TypePremierOpen
	case "open":
		return TypeOpen
	case "limited":
		return TypeLimited
	default:
		return TypeUnknown
	}
}

// Travel holds a pre-resolved route from home to a show venue.
// Distance is kilometres; Duration is the one-way drive time.
type Travel struct {
	DistanceKM float64       `json:"distance_km"`
	Duration   time.Duration `json:"duration"`
}

// Result is the per-show output record. One Result is created per
// successfully processed show; the planner mutates only the Clash and
// OvernightChain fields during its single batch pass.
type Result struct {
	ID        string    `json:"id"`
	ShowURL   string    `json:"show"`
	Date      time.Time `json:"-"`
	DateText  string    `json:"date,omitempty"`
	Postcode  string    `json:"postcode,omitempty"`
	ShowType  Type      `json:"show_type"`
	Judges    []string  `json:"judge,omitempty"`

	EligibleClasses []string `json:"eligible_classes"`
	EnteredClasses  []string `json:"entered_classes"`

	EntryCost     float64  `json:"entry_cost"`
	CatalogueCost float64  `json:"catalogue_cost"`
	EntryTotal    float64  `json:"entry_total"`
	DistanceKM    *float64 `json:"distance_km,omitempty"`
	DurationHours *float64 `json:"duration_hr,omitempty"`
	DieselCost    *float64 `json:"diesel_cost,omitempty"`
	OvernightCost *float64 `json:"overnight_cost,omitempty"`
	TotalCost     float64  `json:"total_cost"`

	Points int `json:"points"`

	EntryClosePostal string `json:"entry_close_postal,omitempty"`
	EntryCloseOnline string `json:"entry_close_online,omitempty"`

	Clash          bool `json:"clash,omitempty"`
	OvernightChain int  `json:"overnight_chain,omitempty"` // 1-based chain number, 0 = none
}

// GenerateID creates a deterministic ID for a show based on its URL.
func GenerateID(showURL string) string {
	h := sha1.New()
	h.Write([]byte(strings.TrimSpace(showURL)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// HasDate reports whether the show carries a parseable calendar date.
// Dateless results are excluded from clash and chain analysis.
func (r *Result) HasDate() bool {
	return !r.Date.IsZero()
}

// DateKey returns the calendar date as YYYY-MM-DD for grouping, or "" when
// the date is unknown.
func (r *Result) DateKey() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format("2006-01-02")
}

// SamePostcode compares two venue postcodes ignoring case and internal spacing,
// so "YO8 9NA" and "yo89na" count as the same venue. Two unknown postcodes
// also compare equal: shows with no venue information are never treated as
// conflicting locations.
func SamePostcode(a, b string) bool {
	norm := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	}
	return norm(a) == norm(b)
}
