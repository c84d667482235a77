// Package profile holds the per-run dog and handler configuration plus the
// win history that class eligibility is judged against.
package profile

import (
	"fmt"
	"time"
)

const (
	// JuniorWarrantWindow is how long after birth a dog can accumulate
	// Junior Warrant points.
	JuniorWarrantWindow = 548 * 24 * time.Hour
)

// Profile is the immutable per-run dog/handler configuration.
type Profile struct {
	DogName string
	DOB     time.Time

	// Award flags gating the conditional special classes.
	HandlerHasCC      bool
	DogHasWorkingQual bool
	DogHasGoodCitizen bool

	// Class lists, matched case-insensitively.
	ClassExclusions []string
	AlwaysInclude   []string

	// Award strings counted as CC / reserve-CC equivalents in the win log.
	CCTriggerWords  []string
	RCCTriggerWords []string

	// Derived cutoffs, computed once from DOB.
	JWCutoff    time.Time
	PuppyCutoff time.Time
}

// New builds a Profile from raw configuration values and computes the
// derived cutoff dates. A zero date of birth is a validation error: age
// arithmetic defines correctness-critical semantics and is never defaulted.
func New(dogName string, dob time.Time, handlerHasCC, workingQual, goodCitizen bool,
	exclusions, alwaysInclude, ccTriggers, rccTriggers []string) (*Profile, error) {

	if dob.IsZero() {
		return nil, fmt.Errorf("profile: date of birth is required")
	}

	return &Profile{
		DogName:           dogName,
		DOB:               dob,
		HandlerHasCC:      handlerHasCC,
		DogHasWorkingQual: workingQual,
		DogHasGoodCitizen: goodCitizen,
		ClassExclusions:   exclusions,
		AlwaysInclude:     alwaysInclude,
		CCTriggerWords:    ccTriggers,
		RCCTriggerWords:   rccTriggers,
		JWCutoff:          dob.Add(JuniorWarrantWindow),
		PuppyCutoff:       dob.AddDate(1, 0, 0),
	}, nil
}

// AgeInMonths returns the dog's age in whole calendar months at the given
// date. Day-of-month is intentionally ignored, matching how class age
// windows have always been computed here; dates near a birthday can land
// one month either side of the true age.
func (p *Profile) AgeInMonths(at time.Time) int {
	return (at.Year()-p.DOB.Year())*12 + int(at.Month()) - int(p.DOB.Month())
}
