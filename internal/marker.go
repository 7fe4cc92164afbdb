package internal

import "fmt"

// Rect is the on-screen box of a candidate.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Candidate is one clickable target. ID is its identity for the length of an
// episode; the remaining fields feed the link text used by filter hints.
type Candidate struct {
	ID          int
	Rect        Rect
	Tag         string
	InputType   string
	ElementID   string
	Href        string
	Value       string
	Placeholder string
	Text        string
	ImageAlt    string
	ImageTitle  string
}

// Label is a label element pointing at the element whose id is For.
type Label struct {
	For  string
	Text string
}

// Snapshot is everything a source knows about the page at episode start.
type Snapshot struct {
	Candidates []Candidate
	Labels     []Label
}

// Source produces the candidates for a new episode.
type Source interface {
	Snapshot() (*Snapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (*Snapshot, error)

func (f SourceFunc) Snapshot() (*Snapshot, error) {
	return f()
}

// Marker binds a candidate to its hint and carries what the renderer shows.
type Marker struct {
	Candidate Candidate
	Hint      string
	Display   string

	// filter hints only
	LinkText     string
	ShowLinkText bool
	Filtered     bool

	// Hidden is set for markers outside the latest match set.
	Hidden bool
	// MatchedChars is how many leading characters of Hint have been typed.
	MatchedChars int
}

func (m *Marker) String() string {
	return fmt.Sprintf("Marker{id:%d,hint:%s,display:%q,hidden:%t}", m.Candidate.ID, m.Hint, m.Display, m.Hidden)
}
