// Package cost computes entry-fee and travel costs for a show.
// All functions are pure; rounding to two decimals happens at output time,
// not in intermediate arithmetic.
package cost

import (
	"math"
	"time"
)

const (
	// LitresPerGallon converts UK gallons to litres.
	LitresPerGallon = 4.54609
	// MilesPerKM converts kilometres to miles.
	MilesPerKM = 0.621371

	// DefaultFirstEntry is assumed when a schedule's fee table can't be
	// parsed. Non-member rates.
	DefaultFirstEntry = 5.00
	// DefaultCatalogue is assumed when no catalogue price is found.
	DefaultCatalogue = 3.00
)

// FeeTable holds the per-show entry pricing parsed from a schedule.
type FeeTable struct {
	FirstEntry      float64 `json:"first_entry"`
	AdditionalEntry float64 `json:"additional_entry"`
	Catalogue       float64 `json:"catalogue"`
}

// DefaultFees returns the documented fallback fee table: first entry £5.00,
// additional entries at the first-entry rate, catalogue £3.00.
func DefaultFees() FeeTable {
	return FeeTable{
		FirstEntry:      DefaultFirstEntry,
		AdditionalEntry: DefaultFirstEntry,
		Catalogue:       DefaultCatalogue,
	}
}

// Entry is the entry-fee breakdown for one show.
type Entry struct {
	EntryCost     float64 `json:"entry_cost"`
	CatalogueCost float64 `json:"catalogue_cost"`
	TotalCost     float64 `json:"total_cost"`
}

// EntryCost computes the show entry total from the fee table and the number
// of classes being entered. With no classes the entry cost is zero and the
// total collapses to the catalogue price alone.
func EntryCost(fees FeeTable, classCount int) Entry {
	if classCount <= 0 {
		return Entry{
			EntryCost:     0,
			CatalogueCost: fees.Catalogue,
			TotalCost:     fees.Catalogue,
		}
	}

	entry := fees.FirstEntry + fees.AdditionalEntry*float64(classCount-1)
	return Entry{
		EntryCost:     entry,
		CatalogueCost: fees.Catalogue,
		TotalCost:     entry + fees.Catalogue,
	}
}

// DieselCost estimates round-trip fuel cost for a one-way distance in
// kilometres at the given pump price per litre and vehicle economy in
// miles per gallon.
func DieselCost(oneWayKM, pricePerLitre, mpg float64) float64 {
	if mpg <= 0 {
		return 0
	}
	roundTripMiles := oneWayKM * 2 * MilesPerKM
	gallons := roundTripMiles / mpg
	return gallons * LitresPerGallon * pricePerLitre
}

// OvernightSurcharge returns the flat hotel surcharge when the one-way
// driving duration exceeds the threshold, added once per show. Zero
// otherwise.
func OvernightSurcharge(oneWay, threshold time.Duration, surcharge float64) float64 {
	if threshold > 0 && oneWay > threshold {
		return surcharge
	}
	return 0
}

// Round rounds a monetary value to two decimal places for output.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
