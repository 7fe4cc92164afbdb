package internal

import (
	"log/slog"

	"github.com/mattn/go-runewidth"

	"github.com/Sneaken/vimium/pkg/page"
)

// PageSource turns a parsed page into snapshots. Each element gets its own
// row, in document order.
type PageSource struct {
	load func() (*page.Document, error)
}

// NewPageSource creates a source that calls load on every snapshot.
func NewPageSource(load func() (*page.Document, error)) *PageSource {
	return &PageSource{load: load}
}

// StaticPageSource always yields the same document.
func StaticPageSource(doc *page.Document) *PageSource {
	return NewPageSource(func() (*page.Document, error) { return doc, nil })
}

func (s *PageSource) Snapshot() (*Snapshot, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	snapshot := SnapshotFromDocument(doc)
	slog.Debug("page snapshot", "title", doc.Title, "candidates", len(snapshot.Candidates), "labels", len(snapshot.Labels))
	return snapshot, nil
}

// SnapshotFromDocument converts page elements to candidates.
func SnapshotFromDocument(doc *page.Document) *Snapshot {
	snapshot := &Snapshot{
		Candidates: make([]Candidate, 0, len(doc.Elements)),
		Labels:     make([]Label, 0, len(doc.Labels)),
	}
	for i, el := range doc.Elements {
		c := Candidate{
			ID:          el.Index,
			Tag:         el.Tag,
			InputType:   el.InputType,
			ElementID:   el.ID,
			Href:        el.Href,
			Value:       el.Value,
			Placeholder: el.Placeholder,
			Text:        el.Text,
			ImageAlt:    el.ImageAlt,
			ImageTitle:  el.ImageTitle,
		}
		c.Rect = Rect{Y: i, Height: 1, Width: runewidth.StringWidth(describeCandidate(c))}
		snapshot.Candidates = append(snapshot.Candidates, c)
	}
	for _, l := range doc.Labels {
		snapshot.Labels = append(snapshot.Labels, Label{For: l.For, Text: l.Text})
	}
	return snapshot
}
