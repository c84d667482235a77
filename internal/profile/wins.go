package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// WinRecord is a single show result logged for the dog. Records are
// appended externally as results come in; this package only reads them.
type WinRecord struct {
	Class    string `json:"class"`
	Award    string `json:"award"` // e.g. "1st", "CC", "RCC"
	ShowDate string `json:"show_date"`
}

// Date parses the record's show date. Zero time if unparseable.
func (w WinRecord) Date() time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(w.ShowDate))
	if err != nil {
		return time.Time{}
	}
	return t
}

// WinLog is the dog's full win history.
type WinLog []WinRecord

// LoadWinLog reads a win log from a JSON file. A missing file is not an
// error: a dog with no recorded wins simply has an empty log.
func LoadWinLog(path string) (WinLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return WinLog{}, nil
		}
		return nil, fmt.Errorf("reading win log: %w", err)
	}

	var log WinLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parsing win log: %w", err)
	}
	return log, nil
}

// before filters the log to wins dated on/before the close date. A zero
// close date means the entry-close date is unknown and all wins count.
func (l WinLog) before(closeDate time.Time) WinLog {
	if closeDate.IsZero() {
		return l
	}
	out := make(WinLog, 0, len(l))
	for _, w := range l {
		d := w.Date()
		if !d.IsZero() && !d.After(closeDate) {
			out = append(out, w)
		}
	}
	return out
}

// QualifyingFirsts counts first-place wins on/before closeDate, excluding
// wins in puppy, baby puppy and variety classes, which do not count toward
// the win-gated class thresholds.
func (l WinLog) QualifyingFirsts(closeDate time.Time) int {
	count := 0
	for _, w := range l.before(closeDate) {
		award := strings.ToLower(strings.TrimSpace(w.Award))
		if award != "1st" && award != "first" {
			continue
		}
		class := strings.ToLower(w.Class)
		if strings.Contains(class, "puppy") || strings.Contains(class, "baby") ||
			strings.Contains(class, "variety") {
			continue
		}
		count++
	}
	return count
}

// CountAwards counts records whose award text matches any of the trigger
// words, case-insensitively, on/before closeDate.
func (l WinLog) CountAwards(triggers []string, closeDate time.Time) int {
	count := 0
	for _, w := range l.before(closeDate) {
		award := strings.ToLower(strings.TrimSpace(w.Award))
		for _, trigger := range triggers {
			if award == strings.ToLower(strings.TrimSpace(trigger)) {
				count++
				break
			}
		}
	}
	return count
}

// HasTopAward reports whether the dog has qualified for the top award under
// kennel-club rules: three CC-equivalents, or two CC-equivalents plus five
// reserve-equivalents. Win-gated classes close to the dog once this holds.
func (l WinLog) HasTopAward(p *Profile, closeDate time.Time) bool {
	cc := l.CountAwards(p.CCTriggerWords, closeDate)
	if cc >= 3 {
		return true
	}
	rcc := l.CountAwards(p.RCCTriggerWords, closeDate)
	return cc >= 2 && rcc >= 5
}
