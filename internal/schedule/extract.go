package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/cost"
	"github.com/laurab04-design/fossedata-render/internal/show"
)

// RegexExtractor is the production Extractor: line-oriented regex and
// keyword heuristics tuned against fossedata schedule PDFs.
type RegexExtractor struct {
	// Breed is the breed heading extraction is scoped to,
	// e.g. "Retriever (Golden)".
	Breed string
}

// NewRegexExtractor returns an extractor scoped to the given breed heading.
func NewRegexExtractor(breed string) *RegexExtractor {
	return &RegexExtractor{Breed: breed}
}

var (
	poundPattern    = regexp.MustCompile(`£\s*(\d+(?:\.\d{2})?)`)
	postcodePattern = regexp.MustCompile(`\b[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}\b`)
	showDatePattern = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
	judgePattern    = regexp.MustCompile(`(?i)judge:?\s+((?:Mr|Mrs|Miss|Ms|Dr)\.?\s+[A-Z][\w'.-]*(?:\s+[A-Z][\w'.-]*)*)`)
)

// Extract runs all heuristics over the schedule text. It never fails on
// missing facts: fees fall back to the documented defaults and everything
// else degrades to its zero value.
func (e *RegexExtractor) Extract(text string) (*Facts, error) {
	facts := &Facts{
		ShowType:     e.extractShowType(text),
		ShowDate:     e.extractShowDate(text),
		Postcode:     e.extractPostcode(text),
		Judges:       e.extractJudges(text),
		Fees:         e.ExtractFees(text),
		BreedSection: e.ExtractBreedSection(text),
	}

	facts.EntryClosePostal = e.extractCloseDate(text, "postal entries close")
	facts.EntryCloseOnline = e.extractCloseDate(text, "online entries close")

	return facts, nil
}

// ExtractFees pulls the non-member entry pricing out of the schedule.
// Missing values take the documented defaults: first entry £5.00,
// additional entries at the first-entry rate, catalogue £3.00.
func (e *RegexExtractor) ExtractFees(text string) cost.FeeTable {
	var fees cost.FeeTable
	var haveFirst, haveAdditional, haveCatalogue bool

	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		m := poundPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount := parseAmount(m[1])

		switch {
		case !haveFirst && strings.Contains(line, "first entry"):
			fees.FirstEntry = amount
			haveFirst = true
		case !haveAdditional && (strings.Contains(line, "each subsequent") ||
			strings.Contains(line, "subsequent entries") ||
			strings.Contains(line, "additional entry")):
			fees.AdditionalEntry = amount
			haveAdditional = true
		case !haveCatalogue && strings.Contains(line, "catalogue"):
			fees.Catalogue = amount
			haveCatalogue = true
		}
	}

	if !haveFirst {
		fees.FirstEntry = cost.DefaultFirstEntry
	}
	if !haveAdditional {
		fees.AdditionalEntry = fees.FirstEntry
	}
	if !haveCatalogue {
		fees.Catalogue = cost.DefaultCatalogue
	}
	return fees
}

// extractShowType classifies the show from keywords in the schedule text.
// "Premier open" must be checked before plain "open".
func (e *RegexExtractor) extractShowType(text string) show.Type {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "championship show"):
		return show.TypeChampionship
	case strings.Contains(lower, "premier open show"):
		return show.TypePremierOpen
	case strings.Contains(lower, "open show"):
		return show.TypeOpen
	case strings.Contains(lower, "limited show"):
		return show.TypeLimited
	default:
		return show.TypeUnknown
	}
}

// extractShowDate takes the first long-form date in the text as the show
// date. Schedules put the show date on the cover page, so first match wins.
func (e *RegexExtractor) extractShowDate(text string) time.Time {
	if m := showDatePattern.FindString(text); m != "" {
		return show.ParseDate(m)
	}
	return time.Time{}
}

// extractPostcode returns the first UK postcode found in the text, which on
// fossedata schedules is the venue address on the cover page.
func (e *RegexExtractor) extractPostcode(text string) string {
	return strings.TrimSpace(postcodePattern.FindString(strings.ToUpper(text)))
}

// extractJudges collects the judge names announced in the schedule,
// deduplicated in order of appearance.
func (e *RegexExtractor) extractJudges(text string) []string {
	seen := make(map[string]bool)
	var judges []string
	for _, m := range judgePattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		judges = append(judges, name)
	}
	return judges
}

// extractCloseDate finds a "... entries close" line and parses the date on
// it. Lines reading "closed" are ignored: a closed show has no usable
// close date.
func (e *RegexExtractor) extractCloseDate(text, key string) time.Time {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, key) || strings.Contains(lower, "closed") {
			continue
		}
		if m := showDatePattern.FindString(line); m != "" {
			return show.ParseDate(m)
		}
	}
	return time.Time{}
}

// ExtractBreedSection isolates the class listing for the configured breed:
// everything from the breed heading up to the next breed or group heading.
// Returns "" when the breed does not appear in the schedule.
func (e *RegexExtractor) ExtractBreedSection(text string) string {
	breed := strings.ToLower(e.Breed)
	if breed == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	var section []string
	inSection := false

	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if !inSection {
			if strings.Contains(lower, breed) {
				inSection = true
				section = append(section, line)
			}
			continue
		}
		if isSectionBoundary(lower, breed) {
			break
		}
		section = append(section, line)
	}

	return strings.Join(section, "\n")
}

// isSectionBoundary reports whether a line starts a different breed or
// group section.
func isSectionBoundary(lower, breed string) bool {
	if strings.Contains(lower, breed) {
		return false
	}
	// Another breed heading, e.g. "retriever (labrador)" or "spaniel (cocker)".
	if breedHeadingPattern.MatchString(lower) {
		return true
	}
	// A group heading, e.g. "gundog group".
	return strings.HasSuffix(lower, " group")
}

var breedHeadingPattern = regexp.MustCompile(`^[a-z][a-z ]*\([a-z][a-z /-]*\)$`)

func parseAmount(s string) float64 {
	// The regex guarantees a valid float.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
