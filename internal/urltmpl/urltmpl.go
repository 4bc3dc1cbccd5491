// Package urltmpl expands the FILL placeholder in the base URL template.
package urltmpl

import (
	"net/url"
	"strings"

	"github.com/fillscan/fillscan/internal/candidate"
	"github.com/fillscan/fillscan/internal/config"
)

// Validate checks the base URL once, before any request is issued. The
// placeholder must occur at least once; its absence is a fatal
// configuration error, not a per-request failure.
func Validate(base string) error {
	if !strings.Contains(base, config.Placeholder) {
		return config.Errorf("url", "base URL %q does not contain the %s placeholder", base, config.Placeholder)
	}
	if _, err := url.Parse(strings.ReplaceAll(base, config.Placeholder, "probe")); err != nil {
		return config.Errorf("url", "invalid base URL %q: %v", base, err)
	}
	return nil
}

// Expand substitutes the candidate into every occurrence of the placeholder.
// Percent-encoding is left to the HTTP client.
func Expand(base string, c candidate.Candidate) string {
	return strings.ReplaceAll(base, config.Placeholder, c.String())
}

// Host extracts the hostname used to name report files. Falls back to
// "scan" when the URL has no parseable host.
func Host(base string) string {
	u, err := url.Parse(strings.ReplaceAll(base, config.Placeholder, "probe"))
	if err != nil || u.Host == "" {
		return "scan"
	}
	return u.Host
}
