package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fillscan/fillscan/internal/config"
)

func writeWordlist(t *testing.T, words []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOpts(t *testing.T, baseURL, wordlistPath string) *config.Options {
	t.Helper()
	return &config.Options{
		URL:          baseURL,
		WordlistPath: wordlistPath,
		Threads:      2,
		Timeout:      5 * time.Second,
		Method:       "GET",
		StatusCodes:  []int{200},
		OutputDir:    filepath.Join(t.TempDir(), "reports"),
		Quiet:        true,
		NoColor:      true,
	}
}

func readReport(t *testing.T, opts *config.Options, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
	if err != nil {
		t.Fatalf("reading report %s: %v", name, err)
	}
	return string(data)
}
