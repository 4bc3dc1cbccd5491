// Package candidate generates the (word, extension) combinations a scan
// probes. The sequence is deterministic: for each word the bare word comes
// first, then the word with each extension appended in the order the
// extensions were supplied.
package candidate

import "sync/atomic"

// Candidate is one word/extension combination to probe. Ext is either empty
// or a leading-dot suffix like ".php".
type Candidate struct {
	Word string
	Ext  string
}

// String returns the form substituted into the URL template.
func (c Candidate) String() string {
	return c.Word + c.Ext
}

// Source is a finite, restartable sequence of candidates that is safe to
// drain from multiple goroutines. Each candidate is claimed by exactly one
// caller of Next; the cursor advances atomically so no entry is dispatched
// twice and none is skipped.
type Source struct {
	words []string
	exts  []string // always starts with "" for the bare word
	cur   atomic.Int64
}

// NewSource builds a source over words × (bare + extensions).
func NewSource(words, extensions []string) *Source {
	exts := make([]string, 0, len(extensions)+1)
	exts = append(exts, "")
	exts = append(exts, extensions...)
	return &Source{words: words, exts: exts}
}

// Count returns the total number of candidates the source yields.
func (s *Source) Count() int {
	return len(s.words) * len(s.exts)
}

// Next claims the next candidate in sequence order. ok is false once the
// source is exhausted.
func (s *Source) Next() (c Candidate, ok bool) {
	n := int64(s.Count())
	for {
		cur := s.cur.Load()
		if cur >= n {
			return Candidate{}, false
		}
		if s.cur.CompareAndSwap(cur, cur+1) {
			return Candidate{
				Word: s.words[cur/int64(len(s.exts))],
				Ext:  s.exts[cur%int64(len(s.exts))],
			}, true
		}
	}
}

// Reset rewinds the source so the sequence can be replayed from the start.
func (s *Source) Reset() {
	s.cur.Store(0)
}
