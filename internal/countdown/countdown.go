// Package countdown recomputes time-remaining labels for visible auction
// timers on a repeating tick. It never touches the network; it only reads
// the end timestamps the renderer exposed.
package countdown

import (
	"context"
	"sort"
	"sync"
	"time"

	"auctionhub/internal/clock"
	"auctionhub/internal/render"
)

// TickPeriod is the refresh cadence.
const TickPeriod = time.Second

// Entry is one visible timer: something with an end timestamp that accepts
// label updates.
type Entry interface {
	EndTime() time.Time
	SetLabel(label string)
}

// Source exposes the currently visible timers. Re-renders may change the
// set between ticks; the scheduler takes a fresh snapshot every tick.
type Source interface {
	Entries() []Entry
}

// Scheduler drives the refresh loop.
type Scheduler struct {
	source Source
	clock  clock.Clock
}

// NewScheduler builds a scheduler over the given source.
func NewScheduler(source Source, clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Scheduler{source: source, clock: clk}
}

// Refresh recomputes every visible label once and reports how many timers
// were updated.
func (s *Scheduler) Refresh(now time.Time) int {
	entries := s.source.Entries()
	for _, e := range entries {
		if e == nil {
			continue
		}
		e.SetLabel(render.FormatTimeRemaining(e.EndTime().Sub(now)))
	}
	return len(entries)
}

// Run refreshes on every tick until the context is done or the source has
// no timers left.
func (s *Scheduler) Run(ctx context.Context, ticker clock.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			if s.Refresh(now) == 0 {
				return
			}
		}
	}
}

// Timer is a registry-backed Entry.
type Timer struct {
	mu    sync.Mutex
	end   time.Time
	label string
}

func (t *Timer) EndTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.end
}

func (t *Timer) SetLabel(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label = label
}

// Label returns the last computed time-remaining text.
func (t *Timer) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

// Registry is a Source that UIs populate as listings come and go.
type Registry struct {
	mu     sync.Mutex
	timers map[uint]*Timer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{timers: make(map[uint]*Timer)}
}

// Put registers (or re-registers) the timer for an auction.
func (r *Registry) Put(auctionID uint, end time.Time) *Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &Timer{end: end}
	r.timers[auctionID] = t
	return t
}

// Remove drops a timer, e.g. when its card left the page.
func (r *Registry) Remove(auctionID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, auctionID)
}

// Clear drops every timer, e.g. on wholesale re-render.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers = make(map[uint]*Timer)
}

// Entries snapshots the registered timers in stable auction-ID order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, r.timers[id])
	}
	return entries
}
