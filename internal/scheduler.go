package internal

import (
	"sync"
	"time"
)

// Scheduler runs fn once after d unless the returned cancel is called first.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc. Expired callbacks are handed
// to post, which runs them on the event loop that also handles key events.
type TimerScheduler struct {
	post func(func())
}

// NewTimerScheduler creates a scheduler. It panics if post is nil.
func NewTimerScheduler(post func(func())) *TimerScheduler {
	if post == nil {
		panic("internal: NewTimerScheduler with nil post")
	}
	return &TimerScheduler{post: post}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	run := func() {
		mu.Lock()
		stop := cancelled
		mu.Unlock()
		if !stop {
			fn()
		}
	}

	timer := time.AfterFunc(d, func() {
		s.post(run)
	})

	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		timer.Stop()
	}
}
