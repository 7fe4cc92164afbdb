package internal

import (
	"strings"
	"testing"
)

func linkSnapshot(texts ...string) *Snapshot {
	candidates := make([]Candidate, len(texts))
	for i, text := range texts {
		candidates[i] = Candidate{ID: i, Tag: "a", Text: text, Rect: Rect{Y: i, Width: len(text), Height: 1}}
	}
	return &Snapshot{Candidates: candidates}
}

func numberedSnapshot(n int) *Snapshot {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = "link"
	}
	return linkSnapshot(texts...)
}

func buildAlphabetMarkers(t *testing.T, letters string, n int) (*AlphabetMatcher, []*Marker) {
	t.Helper()
	matcher := NewAlphabetMatcher(NewAlphabet(letters))
	markers, err := matcher.Build(numberedSnapshot(n))
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return matcher, markers
}

func TestAlphabetBuild(t *testing.T) {
	_, markers := buildAlphabetMarkers(t, "asdfg", 10)

	want := []string{"a", "fd", "s", "ff", "d", "fg", "fa", "ga", "fs", "gs"}
	for i, m := range markers {
		if m.Candidate.ID != i {
			t.Errorf("marker %d bound to candidate %d", i, m.Candidate.ID)
		}
		if m.Hint != want[i] {
			t.Errorf("marker %d hint = %q; want %q", i, m.Hint, want[i])
		}
		if m.Display != strings.ToUpper(want[i]) {
			t.Errorf("marker %d display = %q; want %q", i, m.Display, strings.ToUpper(want[i]))
		}
	}
}

func TestAlphabetBuildInvalidAlphabet(t *testing.T) {
	matcher := NewAlphabetMatcher(NewAlphabet("x"))
	if _, err := matcher.Build(numberedSnapshot(3)); err == nil {
		t.Error("expected configuration error for single-letter alphabet")
	}
}

func TestAlphabetFullHintSelectsOne(t *testing.T) {
	for _, n := range []int{1, 2, 7, 30, 140} {
		_, markers := buildAlphabetMarkers(t, "asdfg", n)
		for _, target := range markers {
			for _, typed := range []string{target.Hint, strings.ToUpper(target.Hint)} {
				matcher := NewAlphabetMatcher(NewAlphabet("asdfg"))
				var result MatchResult
				for _, key := range Runes(typed) {
					result = matcher.Match(markers, key)
				}
				if len(result.Matched) != 1 || result.Matched[0] != target {
					t.Fatalf("n=%d typing %q matched %v; want only %v", n, typed, result.Matched, target)
				}
				if result.Delay != 0 {
					t.Errorf("delay = %v; want 0", result.Delay)
				}
				if result.Typed != len(typed) {
					t.Errorf("typed = %d; want %d", result.Typed, len(typed))
				}
			}
		}
	}
}

func TestAlphabetBackspace(t *testing.T) {
	matcher, markers := buildAlphabetMarkers(t, "asdfg", 10)

	tests := []struct {
		key  KeyEvent
		want int
	}{
		{Rune('f'), 5},
		{Rune('d'), 1},
		{BackspaceKey, 5},
		{DeleteKey, 10},
		{BackspaceKey, 0},
	}

	for i, tt := range tests {
		result := matcher.Match(markers, tt.key)
		if len(result.Matched) != tt.want {
			t.Errorf("step %d: matched %d; want %d", i, len(result.Matched), tt.want)
		}
	}
}

func TestAlphabetIgnoresForeignKeys(t *testing.T) {
	matcher, markers := buildAlphabetMarkers(t, "asdfg", 10)
	matcher.Match(markers, Rune('f'))

	for _, key := range []KeyEvent{Rune('x'), Rune('1'), EnterKey, {Shift: true}, {Char: '\x01'}} {
		result := matcher.Match(markers, key)
		if !result.Ignored {
			t.Errorf("key %+v not ignored", key)
		}
		if len(result.Matched) != 5 {
			t.Errorf("key %+v changed the match set to %d", key, len(result.Matched))
		}
	}
}

func TestAlphabetReset(t *testing.T) {
	matcher, markers := buildAlphabetMarkers(t, "asdfg", 10)
	matcher.Match(markers, Rune('f'))

	matcher.Reset()
	matcher.Reset()

	if matcher.queue.Len() != 0 {
		t.Errorf("queue = %q after reset", matcher.queue.String())
	}
	if result := matcher.Match(markers, BackspaceKey); len(result.Matched) != 0 {
		t.Errorf("backspace after reset matched %d; want 0", len(result.Matched))
	}
}
