package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/fillscan/fillscan/internal/candidate"
	"github.com/fillscan/fillscan/internal/urltmpl"
)

// State tracks the scheduler lifecycle: Idle -> Running -> terminal.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds worker pool options.
type Config struct {
	Threads   int
	Throttler *Throttler    // nil = no per-worker delay
	Limiter   *rate.Limiter // nil = no global rate ceiling
	Pauser    *Pauser       // nil = no pause support
}

// Scheduler drives the candidate source through the requester under a fixed
// concurrency ceiling. At most Threads requests are in flight at any
// instant; candidates are claimed in source order by a single producer, so
// the set of dispatched candidates is deterministic even though completion
// order is not.
type Scheduler struct {
	req   *Requester
	cfg   Config
	state atomic.Int32
}

// NewScheduler returns an idle scheduler.
func NewScheduler(req *Requester, cfg Config) *Scheduler {
	return &Scheduler{req: req, cfg: cfg}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Run streams one outcome per candidate on the returned channel. The
// channel closes once every claimed candidate has produced exactly one
// outcome and all workers have exited; the scheduler is then Completed, or
// Cancelled when the context fired first. On cancellation no new candidates
// are dispatched and in-flight requests are abandoned best-effort via the
// request context.
//
// The base URL template is validated before any dispatch. A missing
// placeholder is a fatal configuration error: the scheduler transitions to
// Failed and no request is issued. Once running, individual request
// failures never reach Failed; they are recorded as outcomes and the scan
// continues.
func (s *Scheduler) Run(ctx context.Context, source *candidate.Source, baseURL string) (<-chan Outcome, error) {
	if err := urltmpl.Validate(baseURL); err != nil {
		s.state.Store(int32(StateFailed))
		return nil, err
	}

	threads := s.cfg.Threads
	itemsCh := make(chan candidate.Candidate, threads*2)
	outcomes := make(chan Outcome, threads*2)

	s.state.Store(int32(StateRunning))

	// Producer: single goroutine claims candidates in source order.
	go func() {
		defer close(itemsCh)
		for {
			c, ok := source.Next()
			if !ok {
				return
			}
			select {
			case itemsCh <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range itemsCh {
				if s.cfg.Pauser != nil {
					s.cfg.Pauser.Wait()
				}

				if s.cfg.Limiter != nil {
					if err := s.cfg.Limiter.Wait(ctx); err != nil {
						return
					}
				}

				if s.cfg.Throttler != nil {
					if delay := s.cfg.Throttler.Delay(); delay > 0 {
						select {
						case <-time.After(delay):
						case <-ctx.Done():
							return
						}
					}
				}

				out := s.req.Probe(ctx, urltmpl.Expand(baseURL, c))
				if ctx.Err() != nil {
					// Abandoned in flight; no outcome for this candidate.
					return
				}
				out.Candidate = c

				if s.cfg.Throttler != nil {
					if out.Kind == KindOK {
						s.cfg.Throttler.RecordStatus(out.StatusCode)
					} else {
						s.cfg.Throttler.RecordError()
					}
				}

				select {
				case outcomes <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Closer: settle the terminal state once every worker has exited.
	go func() {
		wg.Wait()
		if ctx.Err() != nil {
			s.state.Store(int32(StateCancelled))
		} else {
			s.state.Store(int32(StateCompleted))
		}
		close(outcomes)
	}()

	return outcomes, nil
}
