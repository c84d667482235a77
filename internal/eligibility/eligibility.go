// Package eligibility determines which show classes a dog may lawfully be
// entered into, given the breed-scoped schedule text, the dog's profile and
// its win history.
//
// Every rule is independently additive: a dog can qualify for several
// classes at the same show. A class is eligible only when it both appears
// in the schedule text and its predicate holds.
package eligibility

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/profile"
	"github.com/laurab04-design/fossedata-render/internal/show"
)

// Input carries everything the engine needs for one show. ScheduleText is
// already scoped to the target breed's section by the schedule extractor.
type Input struct {
	ScheduleText     string
	ShowType         show.Type
	ShowDate         time.Time
	PostalCloseDate  time.Time // zero = unknown, all wins count
	ManualExclusions []string
}

// Result holds the computed class sets. Both are deduplicated and sorted
// alphabetically for deterministic output; callers must still treat them
// as sets, not sequences.
type Result struct {
	AllEligible []string
	ToEnter     []string
}

// ruleContext is the evaluated state a predicate can depend on.
type ruleContext struct {
	ageMonths    int
	wins         int
	topQualified bool
	prof         *profile.Profile
}

// classRule ties a canonical class name to the text patterns that signal
// its presence in a schedule and the predicate that must hold for the dog.
type classRule struct {
	name     string
	patterns []string
	eligible func(ruleContext) bool
}

// ageBetween builds a predicate for a half-open month range [min, max).
func ageBetween(min, max int) func(ruleContext) bool {
	return func(c ruleContext) bool { return c.ageMonths >= min && c.ageMonths < max }
}

// winsUnder builds a predicate for win-gated classes. These close to the
// dog entirely once it has qualified for the top award.
func winsUnder(max int) func(ruleContext) bool {
	return func(c ruleContext) bool { return !c.topQualified && c.wins < max }
}

// classRules is the canonical ruleset, checked in order. Order only affects
// output before sorting; rules never depend on each other.
var classRules = []classRule{
	// Age-gated classes.
	{"baby puppy", []string{"baby puppy"}, ageBetween(4, 6)},
	{"minor puppy", []string{"minor puppy"}, ageBetween(6, 9)},
	{"puppy", []string{"puppy"}, ageBetween(6, 12)},
	{"junior", []string{"junior"}, ageBetween(6, 18)},
	{"yearling", []string{"yearling"}, ageBetween(12, 24)},

	// Win-gated classes.
	{"maiden", []string{"maiden"}, winsUnder(1)},
	{"novice", []string{"novice"}, winsUnder(3)},
	{"undergraduate", []string{"undergraduate"}, winsUnder(3)},
	{"graduate", []string{"graduate"}, winsUnder(4)},
	{"post graduate", []string{"post graduate", "post-graduate", "postgraduate"}, winsUnder(5)},
	{"mid limit", []string{"mid limit", "mid-limit"}, winsUnder(3)},
	{"limit", []string{"limit"}, winsUnder(7)},

	// Open is always available when scheduled.
	{"open", []string{"open"}, func(ruleContext) bool { return true }},

	// Veteran classes.
	{"veteran", []string{"veteran"}, func(c ruleContext) bool { return c.ageMonths >= 84 }},
	{"special veteran", []string{"special veteran"}, func(c ruleContext) bool { return c.ageMonths >= 120 }},

	// Conditional special classes.
	{"special beginners", []string{"special beginners", "special beginner"},
		func(c ruleContext) bool { return !c.prof.HandlerHasCC }},
	{"special working", []string{"special working"},
		func(c ruleContext) bool { return c.prof.DogHasWorkingQual }},
	{"good citizen", []string{"good citizen"},
		func(c ruleContext) bool { return c.prof.DogHasGoodCitizen }},
}

// Compute runs the full eligibility ruleset for one show.
//
// Missing or malformed dates are validation errors; a class name missing
// from the schedule text simply makes that class ineligible.
func Compute(in Input, prof *profile.Profile, wins profile.WinLog) (*Result, error) {
	if prof == nil {
		return nil, fmt.Errorf("eligibility: profile is required")
	}
	if in.ShowDate.IsZero() {
		return nil, fmt.Errorf("eligibility: show date is required")
	}
	if prof.DOB.After(in.ShowDate) {
		return nil, fmt.Errorf("eligibility: show date %s precedes date of birth", in.ShowDate.Format("2006-01-02"))
	}

	text := strings.ToLower(in.ScheduleText)
	ctx := ruleContext{
		ageMonths:    prof.AgeInMonths(in.ShowDate),
		wins:         wins.QualifyingFirsts(in.PostalCloseDate),
		topQualified: wins.HasTopAward(prof, in.PostalCloseDate),
		prof:         prof,
	}

	eligible := make(map[string]bool)
	for _, rule := range classRules {
		if !textContainsAny(text, rule.patterns) {
			continue
		}
		if rule.eligible(ctx) {
			eligible[rule.name] = true
		}
	}

	// User-forced classes bypass the predicates but still require the
	// class to actually be scheduled.
	for _, forced := range prof.AlwaysInclude {
		name := strings.ToLower(strings.TrimSpace(forced))
		if name != "" && textContains(text, name) {
			eligible[name] = true
		}
	}

	excluded := make(map[string]bool)
	for _, ex := range prof.ClassExclusions {
		excluded[strings.ToLower(strings.TrimSpace(ex))] = true
	}
	for _, ex := range in.ManualExclusions {
		excluded[strings.ToLower(strings.TrimSpace(ex))] = true
	}

	result := &Result{
		AllEligible: make([]string, 0, len(eligible)),
		ToEnter:     make([]string, 0, len(eligible)),
	}
	for name := range eligible {
		result.AllEligible = append(result.AllEligible, name)
		if !excluded[name] {
			result.ToEnter = append(result.ToEnter, name)
		}
	}
	sort.Strings(result.AllEligible)
	sort.Strings(result.ToEnter)

	return result, nil
}

// textContainsAny reports whether any pattern appears in the text as a
// whole word/phrase.
func textContainsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if textContains(text, p) {
			return true
		}
	}
	return false
}

// textContains matches a class name or code on word boundaries, so "limit"
// is found in "Limit Dog" but the code "tb" is not found inside "both".
func textContains(text, pattern string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(pattern)) + `\b`)
	if err != nil {
		return strings.Contains(text, strings.ToLower(pattern))
	}
	return re.MatchString(text)
}
