// Package runner drives the per-show pipeline: extract schedule facts,
// compute eligibility, costs and points, and assemble ShowResults, then
// hand the completed batch to the planner.
//
// One show's failure never aborts the batch; failed and skipped shows are
// logged and reported separately.
package runner

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/laurab04-design/fossedata-render/internal/config"
	"github.com/laurab04-design/fossedata-render/internal/cost"
	"github.com/laurab04-design/fossedata-render/internal/eligibility"
	"github.com/laurab04-design/fossedata-render/internal/planner"
	"github.com/laurab04-design/fossedata-render/internal/points"
	"github.com/laurab04-design/fossedata-render/internal/profile"
	"github.com/laurab04-design/fossedata-render/internal/schedule"
	"github.com/laurab04-design/fossedata-render/internal/show"
	"github.com/laurab04-design/fossedata-render/internal/travel"
)

// ErrBreedNotListed marks a schedule that doesn't include the configured
// breed at all. Such shows are skipped, not failed.
var ErrBreedNotListed = errors.New("breed not listed in schedule")

// Source is one show to process: its page URL and the already-extracted
// schedule text.
type Source struct {
	URL  string
	Text string
}

// Skipped records a show left out of the batch and why.
type Skipped struct {
	URL    string `json:"show"`
	Reason string `json:"reason"`
}

// Runner holds everything needed to process a batch.
type Runner struct {
	cfg         *config.Config
	prof        *profile.Profile
	wins        profile.WinLog
	extractor   schedule.Extractor
	routes      travel.Lookup // nil = travel lookups disabled
	dieselPrice float64
}

// New creates a Runner. routes may be nil to run without travel resolution
// (offline mode); travel-derived fields then stay null in the output.
func New(cfg *config.Config, prof *profile.Profile, wins profile.WinLog,
	extractor schedule.Extractor, routes travel.Lookup, dieselPrice float64) *Runner {
	return &Runner{
		cfg:         cfg,
		prof:        prof,
		wins:        wins,
		extractor:   extractor,
		routes:      routes,
		dieselPrice: dieselPrice,
	}
}

// ProcessShow computes the full ShowResult for one show.
//
// A schedule without a parseable show date still yields a result, since
// fees, judges and travel can still be known, but its class sets stay
// empty (age rules need a date) and the planner will report it as skipped.
func (r *Runner) ProcessShow(src Source) (*show.Result, error) {
	facts, err := r.extractor.Extract(src.Text)
	if err != nil {
		return nil, err
	}
	if facts.BreedSection == "" {
		return nil, ErrBreedNotListed
	}

	result := &show.Result{
		ID:              show.GenerateID(src.URL),
		ShowURL:         src.URL,
		Date:            facts.ShowDate,
		ShowType:        facts.ShowType,
		Postcode:        facts.Postcode,
		Judges:          facts.Judges,
		EligibleClasses: []string{},
		EnteredClasses:  []string{},
	}
	if !facts.ShowDate.IsZero() {
		result.DateText = facts.ShowDate.Format("2006-01-02")
	}
	if !facts.EntryClosePostal.IsZero() {
		result.EntryClosePostal = facts.EntryClosePostal.Format("2006-01-02")
	}
	if !facts.EntryCloseOnline.IsZero() {
		result.EntryCloseOnline = facts.EntryCloseOnline.Format("2006-01-02")
	}

	if !facts.ShowDate.IsZero() {
		elig, err := eligibility.Compute(eligibility.Input{
			ScheduleText:    facts.BreedSection,
			ShowType:        facts.ShowType,
			ShowDate:        facts.ShowDate,
			PostalCloseDate: facts.EntryClosePostal,
		}, r.prof, r.wins)
		if err != nil {
			return nil, err
		}
		result.EligibleClasses = elig.AllEligible
		result.EnteredClasses = elig.ToEnter
	} else {
		zap.L().Warn("show has no parseable date, eligibility not computed",
			zap.String("show", src.URL))
	}

	entry := cost.EntryCost(facts.Fees, len(result.EnteredClasses))
	result.EntryCost = entry.EntryCost
	result.CatalogueCost = entry.CatalogueCost
	result.EntryTotal = entry.TotalCost
	result.TotalCost = entry.TotalCost

	r.addTravel(result)

	result.Points = points.Project(facts.ShowType, facts.ShowDate,
		r.prof.JWCutoff, len(result.EnteredClasses))

	return result, nil
}

// addTravel resolves the home-to-venue route and layers the diesel and
// overnight costs onto the total. Missing travel info is a degradation,
// not a failure: the fields just stay null.
func (r *Runner) addTravel(result *show.Result) {
	if r.routes == nil || result.Postcode == "" {
		return
	}

	route, err := r.routes.Route(r.cfg.HomePostcode, result.Postcode)
	if err != nil {
		zap.L().Warn("travel lookup failed",
			zap.String("show", result.ShowURL),
			zap.String("postcode", result.Postcode),
			zap.Error(err))
		return
	}

	distance := route.DistanceKM
	hours := route.Duration.Hours()
	diesel := cost.DieselCost(distance, r.dieselPrice, r.cfg.MPG)

	result.DistanceKM = &distance
	result.DurationHours = &hours
	result.DieselCost = &diesel
	result.TotalCost += diesel

	if surcharge := cost.OvernightSurcharge(route.Duration, r.cfg.OvernightThreshold, r.cfg.OvernightCost); surcharge > 0 {
		result.OvernightCost = &surcharge
		result.TotalCost += surcharge
	}
}

// ProcessBatch processes every source, reusing previously processed results
// by URL. Failures are isolated per show and returned in the skipped list.
func (r *Runner) ProcessBatch(sources []Source, processed map[string]*show.Result) ([]*show.Result, []Skipped) {
	results := make([]*show.Result, 0, len(sources))
	skipped := make([]Skipped, 0)

	for _, src := range sources {
		if cached, ok := processed[src.URL]; ok && cached != nil {
			zap.L().Debug("show already processed", zap.String("show", src.URL))
			results = append(results, cached)
			continue
		}

		start := time.Now()
		result, err := r.ProcessShow(src)
		if err != nil {
			if errors.Is(err, ErrBreedNotListed) {
				zap.L().Info("skipping show, breed not listed", zap.String("show", src.URL))
			} else {
				zap.L().Error("processing failed", zap.String("show", src.URL), zap.Error(err))
			}
			skipped = append(skipped, Skipped{URL: src.URL, Reason: err.Error()})
			continue
		}

		zap.L().Info("processed show",
			zap.String("show", src.URL),
			zap.String("date", result.DateText),
			zap.Int("classes", len(result.EnteredClasses)),
			zap.Int("points", result.Points),
			zap.Duration("took", time.Since(start)))

		processed[src.URL] = result
		results = append(results, result)
	}

	return results, skipped
}

// Plan runs the batch-level clash and overnight-chain analysis once every
// show has been processed.
func (r *Runner) Plan(results []*show.Result) *planner.Report {
	p := planner.New(r.legLookup())
	p.HomeThreshold = r.cfg.ChainHomeThreshold
	p.MaxLeg = r.cfg.ChainMaxLeg
	p.MaxChainLen = r.cfg.ChainMaxLength
	return p.Analyse(results)
}

// legLookup adapts the travel resolver into the planner's venue-to-venue
// lookup. With travel disabled no legs resolve, so no chains form.
func (r *Runner) legLookup() planner.LegLookup {
	return func(from, to string) (time.Duration, bool) {
		if r.routes == nil {
			return 0, false
		}
		route, err := r.routes.Route(from, to)
		if err != nil {
			zap.L().Debug("leg lookup failed",
				zap.String("from", from), zap.String("to", to), zap.Error(err))
			return 0, false
		}
		return route.Duration, true
	}
}
