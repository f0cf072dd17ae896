package selling

import (
	"context"
	"sync"
	"time"

	"auctionhub/internal/clock"
	"auctionhub/internal/models"
	"auctionhub/internal/observability"
	"auctionhub/internal/store"
)

// KeyDraft is the store key the in-progress listing is saved under.
const KeyDraft = "draft"

// DraftDebounce is how long the form must stay idle before an autosave fires.
const DraftDebounce = 2 * time.Second

// DraftManager persists the in-progress listing so an interrupted seller can
// pick up where they left off. Touch debounces writes; SaveNow flushes
// immediately.
type DraftManager struct {
	store  store.Store
	after  clock.AfterFunc
	logger *observability.Logger

	mu      sync.Mutex
	pending func()
}

// DraftOption configures a DraftManager.
type DraftOption func(*DraftManager)

// WithAfterFunc overrides the debounce timer, mainly for tests.
func WithAfterFunc(after clock.AfterFunc) DraftOption {
	return func(d *DraftManager) { d.after = after }
}

// NewDraftManager returns a manager writing to st.
func NewDraftManager(st store.Store, logger *observability.Logger, opts ...DraftOption) *DraftManager {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	d := &DraftManager{
		store:  st,
		after:  clock.SystemAfterFunc,
		logger: logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Touch schedules an autosave of draft once the form has been idle for
// DraftDebounce. A newer Touch supersedes any pending one, so only the
// latest state is written.
func (d *DraftManager) Touch(draft models.DraftListing) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending()
	}
	d.pending = d.after(DraftDebounce, func() {
		if err := d.SaveNow(context.Background(), draft); err != nil {
			d.logger.Warn("draft autosave failed", "error", err)
		}
	})
}

// SaveNow writes draft immediately, bypassing the debounce.
func (d *DraftManager) SaveNow(ctx context.Context, draft models.DraftListing) error {
	return store.SetJSON(ctx, d.store, KeyDraft, draft)
}

// Restore loads the saved draft, or nil when none exists.
func (d *DraftManager) Restore(ctx context.Context) (*models.DraftListing, error) {
	var draft models.DraftListing
	ok, err := store.GetJSON(ctx, d.store, KeyDraft, &draft)
	if err != nil || !ok {
		return nil, err
	}
	return &draft, nil
}

// Clear drops the saved draft and cancels any pending autosave.
func (d *DraftManager) Clear(ctx context.Context) error {
	d.mu.Lock()
	if d.pending != nil {
		d.pending()
		d.pending = nil
	}
	d.mu.Unlock()
	return d.store.Delete(ctx, KeyDraft)
}
