// Package points projects potential Junior Warrant points for a show.
package points

import (
	"time"

	"github.com/laurab04-design/fossedata-render/internal/show"
)

const championshipMultiplier = 3

// Project computes the Junior Warrant points potentially on offer at a show.
//
// Points are only available while the dog is inside its Junior Warrant
// window and only when at least one class can be entered. Championship
// shows are worth 3 points per enterable class; Open and Premier Open shows
// are worth a flat single point. Other show types score nothing.
func Project(showType show.Type, showDate, cutoff time.Time, classCount int) int {
	if classCount <= 0 {
		return 0
	}
	if !cutoff.IsZero() && showDate.After(cutoff) {
		return 0
	}

	switch showType {
	case show.TypeChampionship:
		return championshipMultiplier * classCount
	case show.TypeOpen, show.TypePremierOpen:
		return 1
	default:
		return 0
	}
}
