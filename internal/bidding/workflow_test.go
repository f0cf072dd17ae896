package bidding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionhub/internal/api"
	"auctionhub/internal/models"
	"auctionhub/internal/notify"
)

type fakeBidder struct {
	calls   int
	lastReq api.BidRequest
	result  *models.Auction
	err     error
}

func (f *fakeBidder) PlaceBid(_ context.Context, req api.BidRequest) (*models.Auction, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls++
	return f.err
}

func TestWorkflow_RejectsLocallyWithoutNetwork(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr string
	}{
		{
			name:    "missing name",
			in:      Input{AuctionID: 1, Amount: 200, BidderName: "   ", CurrentPrice: 100},
			wantErr: "Please enter your name",
		},
		{
			name:    "single character name",
			in:      Input{AuctionID: 1, Amount: 200, BidderName: "a", CurrentPrice: 100},
			wantErr: "Name must be at least 2 characters long",
		},
		{
			name:    "zero amount",
			in:      Input{AuctionID: 1, Amount: 0, BidderName: "alice", CurrentPrice: 100},
			wantErr: "Please enter a valid bid amount",
		},
		{
			name:    "negative amount",
			in:      Input{AuctionID: 1, Amount: -10, BidderName: "alice", CurrentPrice: 100},
			wantErr: "Please enter a valid bid amount",
		},
		{
			name:    "amount equal to current price",
			in:      Input{AuctionID: 1, Amount: 100, BidderName: "alice", CurrentPrice: 100},
			wantErr: "Bid must be higher than the current price",
		},
		{
			name:    "amount below current price",
			in:      Input{AuctionID: 1, Amount: 50, BidderName: "alice", CurrentPrice: 100},
			wantErr: "Bid must be higher than the current price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bidder := &fakeBidder{}
			refresher := &fakeRefresher{}
			w := NewWorkflow(bidder, refresher, nil, nil)

			_, err := w.Place(context.Background(), tt.in)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)

			var valErr *models.ValidationError
			assert.True(t, errors.As(err, &valErr))

			// Local rejection means zero network requests and no refresh.
			assert.Zero(t, bidder.calls)
			assert.Zero(t, refresher.calls)
			assert.Equal(t, StateFailed, w.State())
		})
	}
}

func TestWorkflow_SuccessRefetchesListings(t *testing.T) {
	bidder := &fakeBidder{result: &models.Auction{ID: 1, CurrentPrice: 200, BidCount: 5}}
	refresher := &fakeRefresher{}
	w := NewWorkflow(bidder, refresher, nil, nil)

	auction, err := w.Place(context.Background(), Input{
		AuctionID: 1, Amount: 200, BidderName: "  alice  ", CurrentPrice: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, bidder.calls)
	assert.Equal(t, "alice", bidder.lastReq.BidderName)
	assert.Equal(t, 200.0, auction.CurrentPrice)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, StateSucceeded, w.State())
}

func TestWorkflow_ServerErrorSurfacedVerbatim(t *testing.T) {
	bidder := &fakeBidder{err: models.NewApiError(400, "Bid must be at least $101")}
	refresher := &fakeRefresher{}
	w := NewWorkflow(bidder, refresher, nil, nil)

	_, err := w.Place(context.Background(), Input{
		AuctionID: 1, Amount: 100.5, BidderName: "alice", CurrentPrice: 100,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Bid must be at least $101")

	// No retry, no refresh after failure.
	assert.Equal(t, 1, bidder.calls)
	assert.Zero(t, refresher.calls)
	assert.Equal(t, StateFailed, w.State())
}

func TestWorkflow_Notifications(t *testing.T) {
	noDismiss := func(time.Duration, func()) func() { return func() {} }

	t.Run("success message names the bidder", func(t *testing.T) {
		surface := notify.NewSurface(notify.WithAfterFunc(noDismiss))
		bidder := &fakeBidder{result: &models.Auction{ID: 1}}
		w := NewWorkflow(bidder, nil, surface, nil)

		_, err := w.Place(context.Background(), Input{AuctionID: 1, Amount: 200, BidderName: "alice", CurrentPrice: 100})
		require.NoError(t, err)

		n := surface.Active()
		require.NotNil(t, n)
		assert.Equal(t, notify.LevelSuccess, n.Level)
		assert.Equal(t, "Bid placed successfully by alice!", n.Message)
	})

	t.Run("server message shown verbatim", func(t *testing.T) {
		surface := notify.NewSurface(notify.WithAfterFunc(noDismiss))
		bidder := &fakeBidder{err: models.NewApiError(409, "Auction has ended")}
		w := NewWorkflow(bidder, nil, surface, nil)

		_, err := w.Place(context.Background(), Input{AuctionID: 1, Amount: 200, BidderName: "alice", CurrentPrice: 100})
		require.Error(t, err)

		n := surface.Active()
		require.NotNil(t, n)
		assert.Equal(t, notify.LevelError, n.Level)
		assert.Equal(t, "Auction has ended", n.Message)
	})
}

func TestWorkflow_AttemptsAreIndependent(t *testing.T) {
	bidder := &fakeBidder{result: &models.Auction{ID: 1}}
	w := NewWorkflow(bidder, nil, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := w.Place(context.Background(), Input{
			AuctionID: 1, Amount: 200, BidderName: "alice", CurrentPrice: 100,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, bidder.calls)
}
