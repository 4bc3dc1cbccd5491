package output

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fillscan/fillscan/internal/scanner"
)

// Progress tracks and displays scan progress on stderr.
type Progress struct {
	total     int
	completed atomic.Int64
	hits      atomic.Int64
	errors    atomic.Int64
	start     time.Time
	done      chan struct{}
	quiet     bool
	pauser    *scanner.Pauser // nil = no pause indicator
}

// NewProgress creates a progress tracker over a known candidate total.
// Call Start() to begin display updates.
func NewProgress(total int, quiet bool, pauser *scanner.Pauser) *Progress {
	return &Progress{
		total:  total,
		start:  time.Now(),
		done:   make(chan struct{}),
		quiet:  quiet,
		pauser: pauser,
	}
}

// Start begins periodically printing progress to stderr.
func (p *Progress) Start() {
	if p.quiet {
		return
	}
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.print()
			case <-p.done:
				p.print()
				fmt.Fprint(os.Stderr, "\n")
				return
			}
		}
	}()
}

// Increment records a completed probe.
func (p *Progress) Increment() {
	p.completed.Add(1)
}

// IncrementHits records an accepted result.
func (p *Progress) IncrementHits() {
	p.hits.Add(1)
}

// IncrementErrors records a failed probe.
func (p *Progress) IncrementErrors() {
	p.errors.Add(1)
}

// Stop ends the progress display.
func (p *Progress) Stop() {
	if p.quiet {
		return
	}
	close(p.done)
}

func (p *Progress) print() {
	completed := p.completed.Load()
	elapsed := time.Since(p.start).Seconds()
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(completed) / elapsed
	}

	pct := float64(0)
	if p.total > 0 {
		pct = float64(completed) / float64(p.total) * 100
	}

	suffix := ""
	if rate > 0 && completed < int64(p.total) {
		remaining := float64(int64(p.total)-completed) / rate
		suffix = fmt.Sprintf("ETA: %s", time.Duration(remaining*float64(time.Second)).Round(time.Second))
	}
	if p.pauser != nil && p.pauser.IsPaused() {
		suffix = "PAUSED"
	}

	fmt.Fprintf(os.Stderr, "\r\033[K[%3.0f%%] %d/%d | %.0f req/s | Hits: %d | Errors: %d | %s",
		pct, completed, p.total, rate,
		p.hits.Load(), p.errors.Load(), suffix)
}
