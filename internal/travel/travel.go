// Package travel resolves driving routes between postcodes and caches them.
// The computation engine never calls this directly; the runner resolves all
// routes up front and hands the core pre-computed values.
package travel

import "time"

// Route is a resolved one-way drive between two postcodes.
type Route struct {
	DistanceKM float64       `json:"distance_km"`
	Duration   time.Duration `json:"duration"`
}

// Lookup resolves a route between two postcodes. Implementations are the
// HTTP client below and fixed-map fakes in tests.
type Lookup interface {
	Route(from, to string) (*Route, error)
}
