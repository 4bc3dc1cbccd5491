package runner

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/fillscan/fillscan/internal/candidate"
	"github.com/fillscan/fillscan/internal/config"
	"github.com/fillscan/fillscan/internal/output"
	"github.com/fillscan/fillscan/internal/report"
	"github.com/fillscan/fillscan/internal/scanner"
	"github.com/fillscan/fillscan/internal/urltmpl"
	"github.com/fillscan/fillscan/internal/wordlist"
)

// Run executes one full scan: wordlist -> candidates -> dispatch ->
// aggregation -> report files. A cancelled scan still writes whatever was
// accumulated; only a configuration error returns before anything runs.
func Run(ctx context.Context, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if !opts.NoColor && !term.IsTerminal(int(os.Stderr.Fd())) {
		opts.NoColor = true
	}

	words, err := wordlist.Load(opts.WordlistPath, opts.Dedup)
	if err != nil {
		return err
	}
	source := candidate.NewSource(words, opts.Extensions)

	req, err := scanner.NewRequester(opts)
	if err != nil {
		return err
	}

	console := output.NewConsole(os.Stderr, opts.NoColor, opts.Quiet, opts.Verbose)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	sched := scanner.NewScheduler(req, scanner.Config{
		Threads:   opts.Threads,
		Throttler: scanner.NewThrottler(opts.Delay, opts.AdaptiveThrottle, opts.Quiet),
		Limiter:   limiter,
		Pauser:    pauser,
	})

	progress := output.NewProgress(source.Count(), opts.Quiet, pauser)
	agg := report.NewAggregator(opts.StatusCodes, func(r report.Result) {
		progress.IncrementHits()
		console.Hit(r)
	})

	console.Infof("Target: %s", opts.URL)
	console.Infof("Candidates: %d (%d words x %d forms) | threads: %d",
		source.Count(), len(words), 1+len(opts.Extensions), opts.Threads)

	start := time.Now()
	outcomes, err := sched.Run(ctx, source, opts.URL)
	if err != nil {
		return err
	}
	progress.Start()

	for out := range outcomes {
		progress.Increment()
		if out.Kind != scanner.KindOK {
			progress.IncrementErrors()
			console.Failure(out)
		}
		agg.Consume(out)
	}
	progress.Stop()

	rep := agg.Finalize(urltmpl.Host(opts.URL), sched.State(), time.Since(start))

	txtPath, jsonPath, err := output.WriteReports(rep, opts.OutputDir)
	if err != nil {
		return err
	}

	output.WriteSummary(os.Stderr, rep, opts.NoColor)
	console.Donef("Reports saved: %s %s", txtPath, jsonPath)
	return nil
}
