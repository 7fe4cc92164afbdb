package internal

import (
	"log/slog"
	"strings"
	"unicode"
)

// AlphabetMatcher is the default matcher: hints are spelled with the
// alphabet and typed keys are matched against hint prefixes.
type AlphabetMatcher struct {
	alphabet *Alphabet
	queue    keyQueue
}

// NewAlphabetMatcher creates a matcher for the given alphabet.
func NewAlphabetMatcher(alphabet *Alphabet) *AlphabetMatcher {
	return &AlphabetMatcher{alphabet: alphabet}
}

// Build assigns one hint per candidate, in candidate order.
func (m *AlphabetMatcher) Build(snapshot *Snapshot) ([]*Marker, error) {
	hints, err := m.alphabet.Hints(len(snapshot.Candidates))
	if err != nil {
		return nil, err
	}

	markers := make([]*Marker, len(snapshot.Candidates))
	for i, c := range snapshot.Candidates {
		markers[i] = &Marker{
			Candidate: c,
			Hint:      hints[i],
			Display:   strings.ToUpper(hints[i]),
		}
	}
	slog.Debug("alphabet hints built", "count", len(markers), "alphabet", m.alphabet.String())
	return markers, nil
}

// Match consumes one key. Erasing with nothing typed returns no matches,
// which ends the episode.
func (m *AlphabetMatcher) Match(markers []*Marker, key KeyEvent) MatchResult {
	if key.IsErase() {
		if !m.queue.pop() {
			return MatchResult{}
		}
	} else {
		// shifted characters match like their lower-case form
		r, ok := key.Printable()
		r = unicode.ToLower(r)
		if !ok || !m.alphabet.Contains(r) {
			result := m.current(markers)
			result.Ignored = true
			return result
		}
		m.queue.push(r)
	}
	return m.current(markers)
}

func (m *AlphabetMatcher) current(markers []*Marker) MatchResult {
	return MatchResult{
		Matched: filterByHintPrefix(markers, m.queue.String(), nil),
		Typed:   m.queue.Len(),
	}
}

// Reset clears the typed keys.
func (m *AlphabetMatcher) Reset() {
	m.queue.clear()
}
