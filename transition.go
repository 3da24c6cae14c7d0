package mazewalk

import "time"

// DefaultTransitionDelay is the pause between the win and the navigation.
const DefaultTransitionDelay = 900 * time.Millisecond

// Navigator performs the page transition once a maze is solved.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(destination string)

// Navigate calls f(destination).
func (f NavigatorFunc) Navigate(destination string) { f(destination) }

// Schedule is a one-shot callback due at a fixed time. It never runs on its
// own: the owner polls it from the frame loop, so the callback executes on
// the same logical thread as input handling and can be canceled without
// racing it.
type Schedule struct {
	at       time.Time
	fn       func()
	fired    bool
	canceled bool
}

// NewSchedule returns a schedule that runs fn once Poll observes a time at
// or after at.
func NewSchedule(at time.Time, fn func()) *Schedule {
	return &Schedule{at: at, fn: fn}
}

// Poll runs the callback if it is due and still pending. It returns true on
// the call that ran it.
func (s *Schedule) Poll(now time.Time) bool {
	if s == nil || s.fired || s.canceled || now.Before(s.at) {
		return false
	}
	s.fired = true
	if s.fn != nil {
		s.fn()
	}
	return true
}

// Cancel prevents the callback from ever running. Canceling a fired schedule
// has no effect.
func (s *Schedule) Cancel() {
	if s == nil || s.fired {
		return
	}
	s.canceled = true
}

// Pending reports whether the callback has neither run nor been canceled.
func (s *Schedule) Pending() bool {
	return s != nil && !s.fired && !s.canceled
}

// Due returns the time the callback becomes eligible to run.
func (s *Schedule) Due() time.Time {
	return s.at
}
