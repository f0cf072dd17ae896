package clock

import "time"

// Ticker delivers repeated ticks. The countdown scheduler consumes one
// through this interface so tests can drive it manually.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	t *time.Ticker
}

// NewTicker returns a Ticker backed by time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// ManualTicker is a test ticker advanced by calling Tick.
type ManualTicker struct {
	ch chan time.Time
}

// NewManualTicker returns a ticker that only fires when Tick is called.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time, 1)}
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }
func (m *ManualTicker) Stop()               {}

// Tick delivers one tick with the given instant.
func (m *ManualTicker) Tick(t time.Time) {
	m.ch <- t
}

// AfterFunc schedules f after d and returns a cancel func. Components that
// debounce or auto-dismiss take one of these instead of calling
// time.AfterFunc so tests can fire the callback synchronously.
type AfterFunc func(d time.Duration, f func()) (cancel func())

// SystemAfterFunc is the production AfterFunc backed by time.AfterFunc.
func SystemAfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// ImmediateAfterFunc runs f synchronously; useful in tests that want the
// debounced action to happen right away.
func ImmediateAfterFunc(_ time.Duration, f func()) func() {
	f()
	return func() {}
}
