// Package bidding orchestrates the bid-submission path: local validation,
// a single POST, user feedback, and a re-fetch of the listing state.
package bidding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"auctionhub/internal/api"
	"auctionhub/internal/models"
	"auctionhub/internal/notify"
	"auctionhub/internal/observability"
)

// State of one bid attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Bidder is the slice of the API client the workflow needs.
type Bidder interface {
	PlaceBid(ctx context.Context, req api.BidRequest) (*models.Auction, error)
}

// Refresher re-fetches the listing set after a successful bid; the UI is
// redrawn from authoritative server state, never optimistically.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Workflow runs bid attempts. Attempts are independent: no dedup, no
// queueing, no retry.
type Workflow struct {
	bidder    Bidder
	refresher Refresher
	notifier  *notify.Surface
	logger    *observability.Logger
	state     State
}

// NewWorkflow wires a bid workflow. refresher may be nil when there is no
// listing view to refresh.
func NewWorkflow(bidder Bidder, refresher Refresher, notifier *notify.Surface, logger *observability.Logger) *Workflow {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	return &Workflow{
		bidder:    bidder,
		refresher: refresher,
		notifier:  notifier,
		logger:    logger,
		state:     StateIdle,
	}
}

// Input is one bid attempt. CurrentPrice is the displayed price used for
// the "higher than current" pre-check; the server remains the authority on
// the minimum increment.
type Input struct {
	AuctionID    uint
	Amount       float64
	BidderName   string
	CurrentPrice float64
}

// State returns the state of the most recent attempt.
func (w *Workflow) State() State {
	return w.state
}

// Place runs one attempt. Validation failures reject locally and issue no
// network request; submission failures surface the server message verbatim.
func (w *Workflow) Place(ctx context.Context, in Input) (*models.Auction, error) {
	w.state = StateValidating
	if err := w.validate(in); err != nil {
		w.state = StateFailed
		if w.notifier != nil {
			w.notifier.Warning(err.Error())
		}
		return nil, err
	}

	w.state = StateSubmitting
	auction, err := w.bidder.PlaceBid(ctx, api.BidRequest{
		AuctionID:  in.AuctionID,
		Amount:     in.Amount,
		BidderName: strings.TrimSpace(in.BidderName),
	})
	if err != nil {
		w.state = StateFailed
		if w.notifier != nil {
			w.notifier.Error(err.Error())
		}
		w.logger.Error("bid failed",
			slog.Uint64("auction_id", uint64(in.AuctionID)),
			slog.String("error", err.Error()))
		return nil, err
	}

	w.state = StateSucceeded
	if w.notifier != nil {
		w.notifier.Success(fmt.Sprintf("Bid placed successfully by %s!", strings.TrimSpace(in.BidderName)))
	}
	w.logger.Info("bid placed",
		slog.Uint64("auction_id", uint64(in.AuctionID)),
		slog.Float64("amount", in.Amount))

	// Redraw from server state only after the bid response arrived.
	if w.refresher != nil {
		if err := w.refresher.Refresh(ctx); err != nil {
			w.logger.Warn("listing refresh after bid failed", slog.String("error", err.Error()))
			if w.notifier != nil {
				w.notifier.Error("Failed to load auctions")
			}
		}
	}

	return auction, nil
}

func (w *Workflow) validate(in Input) error {
	name := strings.TrimSpace(in.BidderName)
	if name == "" {
		return models.NewValidationError("Please enter your name")
	}
	if len(name) < 2 {
		return models.NewValidationError("Name must be at least 2 characters long")
	}
	if in.Amount <= 0 {
		return models.NewValidationError("Please enter a valid bid amount")
	}
	if in.Amount <= in.CurrentPrice {
		return models.NewValidationError("Bid must be higher than the current price")
	}
	return nil
}
