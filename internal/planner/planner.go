// Package planner runs the batch-level analysis over a completed set of
// show results: same-day clash detection and overnight multi-show chain
// detection.
//
// The planner must only run once every show in a batch has been processed;
// it is a single sequential pass and keeps no state between runs.
package planner

import (
	"sort"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/show"
)

const (
	// DefaultHomeThreshold is the minimum one-way drive from home for a
	// show to seed an overnight chain.
	DefaultHomeThreshold = 180 * time.Minute
	// DefaultMaxLeg is the maximum venue-to-venue drive that can link two
	// consecutive-day shows into a chain.
	DefaultMaxLeg = 75 * time.Minute
)

// LegLookup resolves the pre-computed drive time between two venue
// postcodes. ok is false when no route is known; an unknown leg never
// links a chain.
type LegLookup func(fromPostcode, toPostcode string) (time.Duration, bool)

// Clash records two different-venue shows falling on the same date. Pairs
// are unordered: ShowA sorts before ShowB by URL so re-runs emit identical
// records.
type Clash struct {
	Date  string `json:"date"`
	ShowA string `json:"show_a"`
	ShowB string `json:"show_b"`
}

// Chain is an ordered run of consecutive-day shows linkable by short
// inter-venue drives, worth doing as one trip with overnight stays.
type Chain struct {
	Shows []string        `json:"shows"`
	Dates []string        `json:"dates"`
	Legs  []time.Duration `json:"legs"` // drive time between consecutive shows
}

// Report is the planner's batch output.
type Report struct {
	Clashes []Clash  `json:"clashes"`
	Chains  []Chain  `json:"overnight_chains"`
	Skipped []string `json:"skipped"` // shows excluded for missing dates
}

// Planner holds the thresholds and travel lookup for one analysis run.
type Planner struct {
	HomeThreshold time.Duration
	MaxLeg        time.Duration
	MaxChainLen   int // 0 = unlimited
	Lookup        LegLookup
}

// New returns a Planner with the default thresholds.
func New(lookup LegLookup) *Planner {
	return &Planner{
		HomeThreshold: DefaultHomeThreshold,
		MaxLeg:        DefaultMaxLeg,
		Lookup:        lookup,
	}
}

// Analyse runs clash and chain detection over the batch. Results with a
// parseable date get their Clash and OvernightChain fields set in place;
// dateless results are reported in Skipped rather than silently dropped.
func (p *Planner) Analyse(results []*show.Result) *Report {
	report := &Report{
		Clashes: make([]Clash, 0),
		Chains:  make([]Chain, 0),
		Skipped: make([]string, 0),
	}

	dated := make([]*show.Result, 0, len(results))
	for _, r := range results {
		// Derived flags are recomputed from the current batch; results
		// restored from the snapshot may carry values from a previous run.
		r.Clash = false
		r.OvernightChain = 0

		if r.HasDate() {
			dated = append(dated, r)
		} else {
			report.Skipped = append(report.Skipped, r.ShowURL)
		}
	}

	// Stable order: by date, then URL. Chain extension picks the first
	// match in this order, so the greedy walk is deterministic.
	sort.Slice(dated, func(i, j int) bool {
		if !dated[i].Date.Equal(dated[j].Date) {
			return dated[i].Date.Before(dated[j].Date)
		}
		return dated[i].ShowURL < dated[j].ShowURL
	})

	p.detectClashes(dated, report)
	p.detectChains(dated, report)

	return report
}

// detectClashes flags every unordered pair of same-day shows at different
// venues. Two shows sharing a postcode are one location (a multi-breed show
// with a separate breed ring) and do not conflict.
func (p *Planner) detectClashes(dated []*show.Result, report *Report) {
	byDate := make(map[string][]*show.Result)
	for _, r := range dated {
		byDate[r.DateKey()] = append(byDate[r.DateKey()], r)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		group := byDate[d]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if show.SamePostcode(group[i].Postcode, group[j].Postcode) {
					continue
				}
				report.Clashes = append(report.Clashes, Clash{
					Date:  d,
					ShowA: group[i].ShowURL,
					ShowB: group[j].ShowURL,
				})
				group[i].Clash = true
				group[j].Clash = true
			}
		}
	}
}

// detectChains performs the greedy forward walk. From each unclaimed
// far-from-home show it repeatedly takes the first next-day show reachable
// within MaxLeg. First-match greedy, not shortest-leg: a dead-end first
// match is taken even if another next-day show would have chained further.
func (p *Planner) detectChains(dated []*show.Result, report *Report) {
	byDate := make(map[string][]*show.Result)
	for _, r := range dated {
		byDate[r.DateKey()] = append(byDate[r.DateKey()], r)
	}

	claimed := make(map[string]bool)

	for _, start := range dated {
		if claimed[start.ID] || !p.farFromHome(start) {
			continue
		}

		chain := []*show.Result{start}
		legs := []time.Duration{}
		current := start

		for {
			if p.MaxChainLen > 0 && len(chain) >= p.MaxChainLen {
				break
			}
			next, leg := p.nextLink(current, byDate[nextDay(current.Date)], claimed, chain)
			if next == nil {
				break
			}
			chain = append(chain, next)
			legs = append(legs, leg)
			current = next
		}

		if len(chain) < 2 {
			continue
		}

		out := Chain{Legs: legs}
		for _, r := range chain {
			claimed[r.ID] = true
			out.Shows = append(out.Shows, r.ShowURL)
			out.Dates = append(out.Dates, r.DateKey())
			r.OvernightChain = len(report.Chains) + 1
		}
		report.Chains = append(report.Chains, out)
	}
}

// nextLink returns the first candidate on the following day whose
// venue-to-venue drive from current is within MaxLeg.
func (p *Planner) nextLink(current *show.Result, candidates []*show.Result, claimed map[string]bool, chain []*show.Result) (*show.Result, time.Duration) {
	if p.Lookup == nil {
		return nil, 0
	}
	inChain := make(map[string]bool, len(chain))
	for _, r := range chain {
		inChain[r.ID] = true
	}

	for _, cand := range candidates {
		if claimed[cand.ID] || inChain[cand.ID] {
			continue
		}
		if cand.Postcode == "" || current.Postcode == "" {
			continue
		}
		leg, ok := p.Lookup(current.Postcode, cand.Postcode)
		if ok && leg <= p.MaxLeg {
			return cand, leg
		}
	}
	return nil, 0
}

// farFromHome reports whether the show's one-way drive from home exceeds
// the chain-seeding threshold.
func (p *Planner) farFromHome(r *show.Result) bool {
	if r.DurationHours == nil {
		return false
	}
	return time.Duration(*r.DurationHours*float64(time.Hour)) > p.HomeThreshold
}

func nextDay(d time.Time) string {
	return d.AddDate(0, 0, 1).Format("2006-01-02")
}
