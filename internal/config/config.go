package config

import (
	"fmt"
	"time"
)

// Placeholder is the literal token in the base URL that gets replaced by
// every candidate.
const Placeholder = "FILL"

// Options holds all configuration for a fillscan run.
type Options struct {
	// Target
	URL          string
	WordlistPath string
	Extensions   []string
	Dedup        bool // drop duplicate wordlist entries before scanning

	// Performance
	Threads          int
	Timeout          time.Duration
	Delay            time.Duration
	AdaptiveThrottle bool
	Rate             float64 // global requests/sec ceiling, 0 = unlimited

	// Matching
	StatusCodes []int

	// HTTP
	Method          string // GET or HEAD
	Headers         map[string]string
	UserAgent       string
	Proxy           string
	FollowRedirects bool
	VerifySSL       bool

	// Output
	OutputDir string
	Quiet     bool
	NoColor   bool
	Verbose   bool
}

// ConfigError is a fatal pre-scan configuration problem. It aborts the run
// before any request is issued.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Errorf builds a ConfigError for the given field.
func Errorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks flag values that can be rejected without touching the
// network or the filesystem. Wordlist readability and the URL placeholder
// are checked by their owning packages; numeric and enum constraints live
// here.
func (o *Options) Validate() error {
	if o.URL == "" {
		return Errorf("url", "target URL is required")
	}
	if o.WordlistPath == "" {
		return Errorf("wordlist", "wordlist path is required")
	}
	if o.Threads < 1 {
		return Errorf("threads", "must be >= 1, got %d", o.Threads)
	}
	if o.Timeout <= 0 {
		return Errorf("timeout", "must be > 0, got %s", o.Timeout)
	}
	if o.Rate < 0 {
		return Errorf("rate", "must be >= 0, got %g", o.Rate)
	}
	if o.Method != "GET" && o.Method != "HEAD" {
		return Errorf("method", "must be GET or HEAD, got %q", o.Method)
	}
	for _, code := range o.StatusCodes {
		if code < 100 || code > 599 {
			return Errorf("status", "invalid HTTP status code %d", code)
		}
	}
	for _, ext := range o.Extensions {
		if ext != "" && ext[0] != '.' {
			return Errorf("ext", "extension %q must be empty or start with a dot", ext)
		}
	}
	return nil
}
