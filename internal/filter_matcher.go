package internal

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// TypingDelay is how long a unique filter match waits for further typing
// before it is activated.
const TypingDelay = 200 * time.Millisecond

// FilterMatcher numbers the candidates and narrows them by the text of each
// link. Digits select by number, anything else filters by link text and
// renumbers the survivors.
type FilterMatcher struct {
	hintQueue keyQueue
	textQueue keyQueue
	labels    map[string]string
	folder    cases.Caser
}

// NewFilterMatcher creates a filter matcher.
func NewFilterMatcher() *FilterMatcher {
	return &FilterMatcher{
		labels: map[string]string{},
		folder: cases.Fold(),
	}
}

// Build numbers the candidates 1..N and computes their link text.
func (m *FilterMatcher) Build(snapshot *Snapshot) ([]*Marker, error) {
	m.buildLabelMap(snapshot.Labels)

	markers := make([]*Marker, len(snapshot.Candidates))
	for i, c := range snapshot.Candidates {
		text, show := m.linkText(c)
		marker := &Marker{
			Candidate:    c,
			Hint:         numberHint(i),
			LinkText:     text,
			ShowLinkText: show,
		}
		renderFilterMarker(marker)
		markers[i] = marker
	}
	slog.Debug("filter hints built", "count", len(markers), "labels", len(m.labels))
	return markers, nil
}

func (m *FilterMatcher) buildLabelMap(labels []Label) {
	m.labels = make(map[string]string, len(labels))
	for _, l := range labels {
		if l.For == "" {
			continue
		}
		text := strings.TrimSpace(l.Text)
		text = strings.TrimSuffix(text, ":")
		m.labels[l.For] = text
	}
}

// linkText picks the text a candidate is filtered by and whether it is shown
// next to the number.
func (m *FilterMatcher) linkText(c Candidate) (string, bool) {
	switch strings.ToLower(c.Tag) {
	case "input":
		if label := m.labels[c.ElementID]; label != "" {
			return label, true
		}
		if strings.ToLower(c.InputType) == "password" {
			return "", false
		}
		if c.Value != "" {
			return c.Value, false
		}
		return c.Placeholder, false
	case "a":
		if strings.TrimSpace(c.Text) == "" {
			text := c.ImageAlt
			if text == "" {
				text = c.ImageTitle
			}
			return text, text != ""
		}
	}
	return c.Text, false
}

// Match consumes one key.
func (m *FilterMatcher) Match(markers []*Marker, key KeyEvent) MatchResult {
	typingText := false

	switch {
	case key.Enter:
		for _, marker := range markers {
			if !marker.Hidden && !marker.Filtered {
				return MatchResult{Matched: []*Marker{marker}, Typed: m.hintQueue.Len()}
			}
		}
		return MatchResult{}
	case key.IsErase():
		// the number is the more specific input, so it is erased first
		if !m.hintQueue.pop() && !m.textQueue.pop() {
			return MatchResult{}
		}
	default:
		r, ok := key.Printable()
		if !ok {
			return MatchResult{
				Matched: filterByHintPrefix(markers, m.hintQueue.String(), isFiltered),
				Typed:   m.hintQueue.Len(),
				Ignored: true,
			}
		}
		if r >= '0' && r <= '9' {
			m.hintQueue.push(r)
		} else {
			// the survivors are renumbered, so a typed number is stale
			m.hintQueue.clear()
			m.textQueue.push(r)
			typingText = true
		}
	}

	m.filterLinkText(markers)
	matched := filterByHintPrefix(markers, m.hintQueue.String(), isFiltered)

	var delay time.Duration
	if len(matched) == 1 && typingText {
		delay = TypingDelay
	}
	return MatchResult{Matched: matched, Delay: delay, Typed: m.hintQueue.Len()}
}

// filterLinkText flags markers whose link text does not contain the typed
// text and renumbers the rest in order.
func (m *FilterMatcher) filterLinkText(markers []*Marker) {
	search := m.folder.String(m.textQueue.String())
	next := 0
	for _, marker := range markers {
		if !strings.Contains(m.folder.String(marker.LinkText), search) {
			marker.Filtered = true
			continue
		}
		marker.Filtered = false
		hint := numberHint(next)
		next++
		if hint != marker.Hint {
			marker.Hint = hint
			renderFilterMarker(marker)
		}
	}
}

// Reset clears both queues and the label map.
func (m *FilterMatcher) Reset() {
	m.hintQueue.clear()
	m.textQueue.clear()
	m.labels = map[string]string{}
}

func isFiltered(marker *Marker) bool {
	return marker.Filtered
}

func numberHint(index int) string {
	return strconv.Itoa(index + 1)
}

func renderFilterMarker(marker *Marker) {
	if marker.ShowLinkText {
		marker.Display = marker.Hint + ": " + marker.LinkText
		return
	}
	marker.Display = marker.Hint
}
