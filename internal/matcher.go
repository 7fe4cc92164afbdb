package internal

import (
	"strings"
	"time"
)

// MatchResult is the outcome of one keystroke. Matched is a subset of the
// live markers; Delay asks the caller to wait before treating a single
// match as final.
type MatchResult struct {
	Matched []*Marker
	Delay   time.Duration
	// Typed is the number of hint characters currently typed.
	Typed int
	// Ignored is set when the key meant nothing to the matcher; the match
	// set is unchanged and must not be acted on.
	Ignored bool
}

// Matcher turns candidates into markers and keystrokes into match sets.
// A matcher belongs to exactly one episode.
type Matcher interface {
	Build(snapshot *Snapshot) ([]*Marker, error)
	Match(markers []*Marker, key KeyEvent) MatchResult
	Reset()
}

// NewMatcher picks the matcher variant for an episode.
func NewMatcher(alphabet *Alphabet, filter bool) Matcher {
	if filter {
		return NewFilterMatcher()
	}
	return NewAlphabetMatcher(alphabet)
}

// keyQueue holds typed characters; pop on an empty queue reports false.
type keyQueue []rune

func (q *keyQueue) push(r rune) {
	*q = append(*q, r)
}

func (q *keyQueue) pop() bool {
	if len(*q) == 0 {
		return false
	}
	*q = (*q)[:len(*q)-1]
	return true
}

func (q *keyQueue) clear() {
	*q = (*q)[:0]
}

func (q keyQueue) String() string {
	return string(q)
}

func (q keyQueue) Len() int {
	return len(q)
}

// filterByHintPrefix keeps the markers whose hint starts with prefix.
func filterByHintPrefix(markers []*Marker, prefix string, skip func(*Marker) bool) []*Marker {
	matched := make([]*Marker, 0, len(markers))
	for _, m := range markers {
		if skip != nil && skip(m) {
			continue
		}
		if strings.HasPrefix(m.Hint, prefix) {
			matched = append(matched, m)
		}
	}
	return matched
}
