package internal

import (
	"fmt"
	"log/slog"
)

// State is the phase of the hinting session.
type State int

const (
	StateInactive State = iota
	StateActive
	// StateDelaying waits for a unique match to become final; keys are
	// swallowed meanwhile.
	StateDelaying
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDelaying:
		return "delaying"
	default:
		return "inactive"
	}
}

// Mode tells the sink what to do with the chosen candidate.
type Mode int

const (
	ModeCurrentTab Mode = iota
	ModeNewTab
	ModeCopyURL
	// ModeQueue activates the candidate and immediately starts another
	// episode, so several targets can be picked in a row.
	ModeQueue
)

func (m Mode) String() string {
	switch m {
	case ModeNewTab:
		return "new-tab"
	case ModeCopyURL:
		return "copy-url"
	case ModeQueue:
		return "queue"
	default:
		return "current-tab"
	}
}

// ParseMode maps a mode name back to its Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{ModeCurrentTab, ModeNewTab, ModeCopyURL, ModeQueue} {
		if m.String() == name {
			return m, nil
		}
	}
	return ModeCurrentTab, &ConfigurationError{Field: "mode", Reason: "unknown mode " + name}
}

// EndReason says why an episode ended.
type EndReason int

const (
	EndActivated EndReason = iota
	EndAborted
	EndCancelled
	EndEmpty
)

func (r EndReason) String() string {
	return [...]string{"activated", "aborted", "cancelled", "empty"}[r]
}

// Renderer displays markers. Update receives every marker of the episode;
// hidden ones are not drawn.
type Renderer interface {
	Show(markers []*Marker)
	Update(markers []*Marker)
	Clear()
}

// Sink performs the action on the chosen candidate.
type Sink interface {
	Activate(candidate Candidate, mode Mode)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(candidate Candidate, mode Mode)

func (f SinkFunc) Activate(candidate Candidate, mode Mode) {
	f(candidate, mode)
}

// SessionConfig is read at the start of every episode.
type SessionConfig struct {
	Alphabet string
	Filter   bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithScheduler sets the timer used for delayed activation. The scheduler
// must run callbacks on the goroutine that feeds keys to the session. Filter
// mode cannot start without one.
func WithScheduler(scheduler Scheduler) SessionOption {
	return func(s *Session) {
		s.scheduler = scheduler
	}
}

// WithOnEnd registers a callback run after every episode teardown.
func WithOnEnd(fn func(EndReason)) SessionOption {
	return func(s *Session) {
		s.onEnd = fn
	}
}

// Session drives hinting episodes. At most one episode is live at a time;
// all methods must be called from a single goroutine.
type Session struct {
	config    SessionConfig
	source    Source
	renderer  Renderer
	sink      Sink
	scheduler Scheduler
	onEnd     func(EndReason)
	episode   *episode
}

type episode struct {
	mode    Mode
	state   State
	matcher Matcher
	markers []*Marker
	cancel  func()
}

// NewSession creates an inactive session.
func NewSession(config SessionConfig, source Source, renderer Renderer, sink Sink, opts ...SessionOption) *Session {
	s := &Session{
		config:    config,
		source:    source,
		renderer:  renderer,
		sink:      sink,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the phase of the current episode.
func (s *Session) State() State {
	if s.episode == nil {
		return StateInactive
	}
	return s.episode.state
}

// Mode returns the activation mode of the live episode.
func (s *Session) Mode() Mode {
	if s.episode == nil {
		return ModeCurrentTab
	}
	return s.episode.mode
}

// Markers returns the markers of the live episode.
func (s *Session) Markers() []*Marker {
	if s.episode == nil {
		return nil
	}
	return s.episode.markers
}

// Activate starts an episode. It does nothing while one is already live.
// A configuration error is returned without starting anything.
func (s *Session) Activate(mode Mode) error {
	if s.episode != nil {
		slog.Debug("hint session already active", "mode", s.episode.mode)
		return nil
	}

	alphabet := ResolveAlphabet(s.config.Alphabet)
	if s.config.Filter && s.scheduler == nil {
		return &ConfigurationError{Field: "scheduler", Reason: "filter mode needs a scheduler for delayed activation"}
	}
	if !s.config.Filter {
		if err := alphabet.Validate(); err != nil {
			return err
		}
	}

	snapshot, err := s.source.Snapshot()
	if err != nil {
		return fmt.Errorf("collecting candidates: %w", err)
	}

	matcher := NewMatcher(alphabet, s.config.Filter)
	markers, err := matcher.Build(snapshot)
	if err != nil {
		return fmt.Errorf("building hints: %w", err)
	}
	if len(markers) == 0 {
		slog.Info("no candidates to hint", "mode", mode)
		s.notifyEnd(EndEmpty)
		return nil
	}

	s.episode = &episode{
		mode:    mode,
		state:   StateActive,
		matcher: matcher,
		markers: markers,
	}
	slog.Info("hint episode started", "mode", mode, "markers", len(markers), "filter", s.config.Filter)
	s.renderer.Show(markers)
	return nil
}

// HandleKey feeds one key to the live episode and reports whether the key
// was consumed. Every key is consumed while an episode is live.
func (s *Session) HandleKey(key KeyEvent) bool {
	ep := s.episode
	if ep == nil {
		return false
	}
	if ep.state == StateDelaying {
		return true
	}

	if key.Escape {
		s.teardown(EndCancelled)
		return true
	}
	if key.Shift && key.Char == 0 && !key.IsErase() && !key.Enter {
		s.toggleTabMode(ep)
		return true
	}

	result := ep.matcher.Match(ep.markers, key)
	if result.Ignored {
		return true
	}

	switch len(result.Matched) {
	case 0:
		s.teardown(EndAborted)
	case 1:
		s.choose(ep, result)
	default:
		s.highlight(ep, result)
	}
	return true
}

// Deactivate ends the live episode without activating anything. It is safe
// to call at any time, any number of times.
func (s *Session) Deactivate() {
	s.teardown(EndCancelled)
}

func (s *Session) toggleTabMode(ep *episode) {
	switch ep.mode {
	case ModeCurrentTab:
		ep.mode = ModeNewTab
	case ModeNewTab:
		ep.mode = ModeCurrentTab
	default:
		return
	}
	slog.Debug("hint mode toggled", "mode", ep.mode)
	s.renderer.Update(ep.markers)
}

func (s *Session) choose(ep *episode, result MatchResult) {
	marker := result.Matched[0]
	if result.Delay <= 0 {
		s.finish(ep, marker)
		return
	}

	s.highlight(ep, result)
	ep.state = StateDelaying
	ep.cancel = s.scheduler.Schedule(result.Delay, func() {
		// a stale timer must not touch a newer episode
		if s.episode != ep {
			return
		}
		s.finish(ep, marker)
	})
}

func (s *Session) finish(ep *episode, marker *Marker) {
	mode := ep.mode
	slog.Info("hint activated", "id", marker.Candidate.ID, "hint", marker.Hint, "mode", mode)
	s.sink.Activate(marker.Candidate, mode)
	s.teardown(EndActivated)

	if mode == ModeQueue {
		if err := s.Activate(ModeQueue); err != nil {
			slog.Error("restarting queued hints", "error", err)
		}
	}
}

func (s *Session) highlight(ep *episode, result MatchResult) {
	for _, m := range ep.markers {
		m.Hidden = true
		m.MatchedChars = 0
	}
	for _, m := range result.Matched {
		m.Hidden = false
		m.MatchedChars = result.Typed
	}
	s.renderer.Update(ep.markers)
}

func (s *Session) teardown(reason EndReason) {
	ep := s.episode
	if ep == nil {
		return
	}
	if ep.cancel != nil {
		ep.cancel()
	}
	ep.matcher.Reset()
	s.episode = nil
	s.renderer.Clear()
	slog.Info("hint episode ended", "reason", reason)
	s.notifyEnd(reason)
}

func (s *Session) notifyEnd(reason EndReason) {
	if s.onEnd != nil {
		s.onEnd(reason)
	}
}
