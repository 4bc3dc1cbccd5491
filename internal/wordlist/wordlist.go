package wordlist

import (
	"os"
	"strings"

	"github.com/fillscan/fillscan/internal/config"
)

// Load reads a newline-delimited wordlist. Leading/trailing whitespace is
// trimmed, blank lines and '#' comments are skipped. When dedup is set,
// repeated entries are dropped while preserving first-seen order; otherwise
// the file is taken as-is, duplicates included.
//
// An unreadable or effectively empty wordlist is a fatal configuration
// error: there is nothing to scan.
func Load(path string, dedup bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, config.Errorf("wordlist", "reading %s: %v", path, err)
	}

	lines := strings.Split(string(data), "\n")
	var words []string
	var seen map[string]struct{}
	if dedup {
		seen = make(map[string]struct{}, len(lines))
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if dedup {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
		}
		words = append(words, line)
	}

	if len(words) == 0 {
		return nil, config.Errorf("wordlist", "%s contains no usable entries", path)
	}
	return words, nil
}
