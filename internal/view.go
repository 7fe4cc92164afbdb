package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// View draws candidates with their hint markers on a terminal screen and
// feeds terminal keys to a Session. It is the session's Renderer.
type View struct {
	screen  tcell.Screen
	colors  ViewColors
	markers []*Marker
	session *Session
}

// NewView creates a view on an initialised screen.
func NewView(screen tcell.Screen, colors ViewColors) *View {
	return &View{
		screen: screen,
		colors: colors,
	}
}

func (v *View) Show(markers []*Marker) {
	v.markers = markers
	v.render()
}

func (v *View) Update(markers []*Marker) {
	v.markers = markers
	v.render()
}

func (v *View) Clear() {
	v.markers = nil
	v.screen.Clear()
	v.screen.Show()
}

// Post runs fn on the view's event loop. It is safe to call from any
// goroutine and is meant as the post function of a TimerScheduler.
func (v *View) Post(fn func()) {
	if err := v.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		slog.Warn("dropping posted callback", "error", err)
	}
}

// Run processes screen events until the session has no live episode.
func (v *View) Run(session *Session) {
	v.session = session

	renderStart := time.Now()
	v.render()
	slog.Debug("first render completed", "duration_ms", time.Since(renderStart).Milliseconds())

	for session.State() != StateInactive {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			session.HandleKey(KeyEventFromTcell(ev))
		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok {
				fn()
			}
		case *tcell.EventResize:
			v.screen.Sync()
			v.render()
		case *tcell.EventError:
			slog.Error("screen error", "error", ev.Error())
			session.Deactivate()
		case nil:
			// screen finalised
			session.Deactivate()
		}
	}
}

// render draws every candidate on its row, then the visible markers over
// the start of the row and a status line at the bottom.
func (v *View) render() {
	v.screen.Clear()
	width, height := v.screen.Size()

	for _, m := range v.markers {
		y := m.Candidate.Rect.Y
		if y < 0 || y >= height-1 {
			continue
		}
		x := m.Candidate.Rect.X
		if m.Hidden || m.Filtered {
			v.drawString(x, y, width, describeCandidate(m.Candidate), v.hiddenStyle())
			continue
		}
		x = v.drawMarker(x, y, width, m)
		if text := markerRowText(m); text != "" {
			v.drawString(x+1, y, width, text, v.textStyle())
		}
	}

	if height > 0 && v.session != nil {
		v.drawString(0, height-1, width, v.statusLine(), v.textStyle().Reverse(true))
	}
	v.screen.Show()
}

// drawMarker draws the marker display and returns the column after it.
// The typed part of the hint is drawn in the match style.
func (v *View) drawMarker(x, y, width int, m *Marker) int {
	for i, r := range []rune(m.Display) {
		style := v.hintStyle()
		if i < m.MatchedChars {
			style = v.matchStyle()
		}
		x = v.setCell(x, y, width, r, style)
	}
	return x
}

func (v *View) drawString(x, y, width int, text string, style tcell.Style) int {
	for _, r := range text {
		x = v.setCell(x, y, width, r, style)
	}
	return x
}

func (v *View) setCell(x, y, width int, r rune, style tcell.Style) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	if x >= 0 && x+w <= width {
		v.screen.SetContent(x, y, r, nil, style)
	}
	return x + w
}

func (v *View) statusLine() string {
	visible := 0
	for _, m := range v.markers {
		if !m.Hidden && !m.Filtered {
			visible++
		}
	}
	return fmt.Sprintf(" %s | %d/%d ", v.session.Mode(), visible, len(v.markers))
}

func (v *View) textStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(v.colors.Foreground).Background(v.colors.Background)
}

func (v *View) hiddenStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(v.colors.HiddenForeground).Background(v.colors.HiddenBackground)
}

func (v *View) hintStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(v.colors.HintForeground).Background(v.colors.HintBackground).Bold(true)
}

func (v *View) matchStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(v.colors.MatchForeground).Background(v.colors.MatchBackground).Bold(true)
}

// markerRowText is what follows a visible marker. A marker that already
// shows its link text is only followed by the href.
func markerRowText(m *Marker) string {
	if !m.ShowLinkText {
		return describeCandidate(m.Candidate)
	}
	if m.Candidate.Href != "" {
		return "<" + m.Candidate.Href + ">"
	}
	return ""
}

// describeCandidate is the text shown for a candidate row.
func describeCandidate(c Candidate) string {
	for _, s := range []string{c.Text, c.Value, c.Placeholder, c.ImageAlt, c.ImageTitle, c.Href} {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			if c.Href != "" && s != c.Href {
				return s + " <" + c.Href + ">"
			}
			return s
		}
	}
	return "<" + c.Tag + ">"
}
