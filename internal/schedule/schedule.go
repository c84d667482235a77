// Package schedule turns raw show-schedule text into the structured facts
// the computation engine consumes: show type, date, venue postcode, judges,
// the fee table and the breed-scoped class listing.
//
// Extraction is deliberately behind the Extractor interface so the regex
// heuristics here can be swapped for a smarter implementation without
// touching anything downstream.
package schedule

import (
	"time"

	"github.com/laurab04-design/fossedata-render/internal/cost"
	"github.com/laurab04-design/fossedata-render/internal/show"
)

// Facts is the fixed-shape output of schedule text extraction. Fields that
// could not be determined are left at their zero value; only the schedule
// text itself is required.
type Facts struct {
	ShowType     show.Type
	ShowDate     time.Time
	Postcode     string
	Judges       []string
	Fees         cost.FeeTable
	BreedSection string

	EntryClosePostal time.Time
	EntryCloseOnline time.Time
}

// Extractor produces Facts from raw schedule text.
type Extractor interface {
	Extract(text string) (*Facts, error)
}
