// Package report classifies probe outcomes against the accepted-status set
// and accumulates the ordered result set for one scan.
package report

import (
	"time"

	"github.com/fillscan/fillscan/internal/scanner"
)

// Result is one accepted hit. Order in the report is arrival order:
// requests complete out of order under concurrency, so this is completion
// order, not candidate order.
type Result struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status"`
}

// Stats aggregates scan-wide counters.
type Stats struct {
	Total          int
	Hits           int
	Rejected       int // responded, status not in the accepted set
	Timeouts       int
	ConnErrors     int
	ProtoErrors    int
	Duration       time.Duration
	RequestsPerSec float64
}

// Errors returns the number of probes that failed without a status code.
func (s Stats) Errors() int {
	return s.Timeouts + s.ConnErrors + s.ProtoErrors
}

// Report is the immutable final product of one scan. Built once after the
// scheduler reaches a terminal state; a cancelled scan still yields a valid
// partial report.
type Report struct {
	Host    string
	Results []Result
	State   scanner.State
	Stats   Stats
}

// Aggregator consumes the outcome stream incrementally as it is produced.
// It is driven by the single goroutine draining the scheduler's channel and
// needs no locking of its own.
type Aggregator struct {
	accepted map[int]struct{}
	seen     map[string]struct{}
	results  []Result
	stats    Stats
	onHit    func(Result) // optional live notification, may be nil
}

// NewAggregator builds an aggregator for a fixed accepted-status set. The
// set cannot change mid-scan. onHit, when non-nil, fires once per new hit
// in arrival order.
func NewAggregator(accepted []int, onHit func(Result)) *Aggregator {
	set := make(map[int]struct{}, len(accepted))
	for _, code := range accepted {
		set[code] = struct{}{}
	}
	return &Aggregator{
		accepted: set,
		seen:     make(map[string]struct{}),
		onHit:    onHit,
	}
}

// Consume records one outcome. Returns true when the outcome became a new
// hit: status present, member of the accepted set, and the URL not already
// recorded.
func (a *Aggregator) Consume(out scanner.Outcome) bool {
	a.stats.Total++

	switch out.Kind {
	case scanner.KindTimeout:
		a.stats.Timeouts++
		return false
	case scanner.KindConnection:
		a.stats.ConnErrors++
		return false
	case scanner.KindProtocol:
		a.stats.ProtoErrors++
		return false
	}

	if _, ok := a.accepted[out.StatusCode]; !ok {
		a.stats.Rejected++
		return false
	}
	if _, dup := a.seen[out.URL]; dup {
		return false
	}
	a.seen[out.URL] = struct{}{}

	hit := Result{URL: out.URL, StatusCode: out.StatusCode}
	a.results = append(a.results, hit)
	a.stats.Hits++
	if a.onHit != nil {
		a.onHit(hit)
	}
	return true
}

// Hits returns the number of accepted results so far.
func (a *Aggregator) Hits() int {
	return len(a.results)
}

// Finalize freezes the accumulated results into a Report. Call once, after
// the scheduler has reached a terminal state.
func (a *Aggregator) Finalize(host string, state scanner.State, duration time.Duration) *Report {
	a.stats.Duration = duration
	if duration.Seconds() > 0 {
		a.stats.RequestsPerSec = float64(a.stats.Total) / duration.Seconds()
	}
	results := make([]Result, len(a.results))
	copy(results, a.results)
	return &Report{
		Host:    host,
		Results: results,
		State:   state,
		Stats:   a.stats,
	}
}
