package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"auctionhub/internal/clock"
	"auctionhub/internal/render"
)

func TestScheduler_RefreshUpdatesLabels(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	live := reg.Put(1, now.Add(90*time.Second))
	ended := reg.Put(2, now.Add(-time.Minute))

	s := NewScheduler(reg, clock.NewFixed(now))
	updated := s.Refresh(now)

	assert.Equal(t, 2, updated)
	assert.Equal(t, "1m 30s", live.Label())
	assert.Equal(t, render.EndedLabel, ended.Label())
}

func TestScheduler_RunStopsWhenNoTimersRemain(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	timer := reg.Put(1, now.Add(time.Hour))

	s := NewScheduler(reg, clock.NewFixed(now))
	ticker := clock.NewManualTicker()

	done := make(chan struct{})
	go func() {
		s.Run(context.Background(), ticker)
		close(done)
	}()

	ticker.Tick(now)
	// Timers disappearing between ticks must not break the loop.
	reg.Clear()
	ticker.Tick(now.Add(time.Second))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after registry emptied")
	}
	// The first tick landed before Clear.
	assert.Equal(t, "1h 0m", timer.Label())
}

func TestScheduler_RunHonorsContext(t *testing.T) {
	reg := NewRegistry()
	reg.Put(1, time.Now().Add(time.Hour))

	s := NewScheduler(reg, clock.NewSystem())
	ticker := clock.NewManualTicker()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, ticker)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}
