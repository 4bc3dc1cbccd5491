package scanner

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Throttler provides the per-worker request delay, with optional adaptive
// back-off: 429/503 responses (or repeated connection errors) double the
// delay up to a ceiling, and healthy responses gradually recover it back
// toward the configured base.
type Throttler struct {
	mu           sync.Mutex
	baseDelay    time.Duration
	currentDelay time.Duration
	maxDelay     time.Duration
	consecutive  int
	adaptive     bool
	quiet        bool
}

// NewThrottler creates a throttler. When adaptive is false it only ever
// returns the fixed base delay.
func NewThrottler(baseDelay time.Duration, adaptive, quiet bool) *Throttler {
	return &Throttler{
		baseDelay:    baseDelay,
		currentDelay: baseDelay,
		maxDelay:     30 * time.Second,
		adaptive:     adaptive,
		quiet:        quiet,
	}
}

// Delay returns the current per-request delay.
func (t *Throttler) Delay() time.Duration {
	if !t.adaptive {
		return t.baseDelay
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentDelay
}

// RecordStatus feeds a response status code back into the throttler.
func (t *Throttler) RecordStatus(statusCode int) {
	if !t.adaptive {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if statusCode == 429 || statusCode == 503 {
		t.consecutive++
		t.backoff(fmt.Sprintf("rate limited (HTTP %d)", statusCode))
		return
	}
	if t.consecutive > 0 {
		t.consecutive = 0
		t.recover()
	}
}

// RecordError feeds a failed probe into the throttler. Three consecutive
// failures are treated as a rate limit signal.
func (t *Throttler) RecordError() {
	if !t.adaptive {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecutive++
	if t.consecutive >= 3 {
		t.backoff("repeated request failures")
	}
}

// backoff doubles the delay up to maxDelay. Caller holds t.mu.
func (t *Throttler) backoff(reason string) {
	newDelay := t.currentDelay * 2
	if newDelay < 500*time.Millisecond {
		newDelay = 500 * time.Millisecond
	}
	if newDelay > t.maxDelay {
		newDelay = t.maxDelay
	}
	if newDelay != t.currentDelay {
		t.currentDelay = newDelay
		if !t.quiet {
			fmt.Fprintf(os.Stderr, "\n[!] %s, backing off to %s/req\n", reason, t.currentDelay)
		}
	}
}

// recover halves the delay toward the base. Caller holds t.mu.
func (t *Throttler) recover() {
	newDelay := t.currentDelay / 2
	if newDelay < t.baseDelay {
		newDelay = t.baseDelay
	}
	if newDelay != t.currentDelay {
		t.currentDelay = newDelay
		if !t.quiet && t.currentDelay > t.baseDelay {
			fmt.Fprintf(os.Stderr, "\n[+] Recovering, delay now %s/req\n", t.currentDelay)
		}
	}
}
