// Package notify is the transient user-facing message surface. A new
// message replaces the current one, and messages dismiss themselves after
// a fixed window.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"auctionhub/internal/clock"
)

// Level classifies a notification for styling.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DismissAfter is the auto-dismiss window.
const DismissAfter = 5 * time.Second

// Notification is one transient message.
type Notification struct {
	ID      string
	Level   Level
	Message string
}

// Surface holds at most one live notification.
type Surface struct {
	mu       sync.Mutex
	after    clock.AfterFunc
	current  *Notification
	cancel   func()
	onChange func(*Notification)
}

// Option configures a Surface.
type Option func(*Surface)

// WithAfterFunc overrides the dismiss timer source (tests).
func WithAfterFunc(after clock.AfterFunc) Option {
	return func(s *Surface) { s.after = after }
}

// WithOnChange registers a callback invoked with the new notification on
// every push, and with nil on dismiss.
func WithOnChange(fn func(*Notification)) Option {
	return func(s *Surface) { s.onChange = fn }
}

// NewSurface builds an empty surface.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{after: clock.SystemAfterFunc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push replaces the current notification and arms its dismiss timer.
func (s *Surface) Push(level Level, message string) Notification {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	n := Notification{ID: uuid.NewString(), Level: level, Message: message}
	s.current = &n
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(&n)
	}

	cancel := s.after(DismissAfter, func() { s.dismiss(n.ID) })
	s.mu.Lock()
	// Push may have been called again from the timer callback; only keep
	// the cancel if this notification is still current.
	if s.current != nil && s.current.ID == n.ID {
		s.cancel = cancel
	}
	s.mu.Unlock()
	return n
}

func (s *Surface) Info(message string) Notification    { return s.Push(LevelInfo, message) }
func (s *Surface) Success(message string) Notification { return s.Push(LevelSuccess, message) }
func (s *Surface) Warning(message string) Notification { return s.Push(LevelWarning, message) }
func (s *Surface) Error(message string) Notification   { return s.Push(LevelError, message) }

// Dismiss removes the current notification immediately.
func (s *Surface) Dismiss() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = nil
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

// dismiss clears the notification with the given ID if it is still showing.
func (s *Surface) dismiss(id string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.cancel = nil
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

// Active returns the live notification, or nil.
func (s *Surface) Active() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	n := *s.current
	return &n
}
