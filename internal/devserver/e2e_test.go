package devserver

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionhub/internal/api"
	"auctionhub/internal/models"
	"auctionhub/internal/session"
	"auctionhub/internal/store"
)

// startDevServer serves the app on a real listener and returns the API base
// URL the client should target.
func startDevServer(t *testing.T) (*Server, string) {
	t.Helper()
	db := setupTestDB(t)
	srv := NewServer(testConfig(t), db, nil)
	app := srv.App()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() { _ = app.Shutdown() })

	return srv, fmt.Sprintf("http://%s/api", ln.Addr().String())
}

func TestEndToEnd_RegisterSellAndBid(t *testing.T) {
	ctx := context.Background()
	_, baseURL := startDevServer(t)

	sess := session.NewManager(ctx, store.NewMemory(), nil)
	client := api.NewClient(baseURL, sess)

	// Register and persist the issued credential the way the app does.
	auth, err := client.Register(ctx, api.RegisterRequest{
		Username:  "seller_sam",
		Email:     "sam@example.com",
		Password:  "password123",
		FirstName: "Sam",
		LastName:  "Fields",
	})
	require.NoError(t, err)
	sess.Save(ctx, auth.Token, &auth.User)
	require.True(t, sess.IsAuthenticated())

	// Create a listing with the stored credential.
	created, err := client.CreateAuction(ctx, api.CreateAuctionRequest{
		Title:         "Signed first edition novel",
		Description:   "A signed first edition in very good condition, minor shelf wear.",
		StartingPrice: 120,
		EndTime:       time.Now().Add(48 * time.Hour),
		CategoryID:    1,
		Condition:     "used",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Attach an image over the multipart endpoint.
	img, err := client.UploadImage(ctx, "cover.jpg", bytes.NewReader([]byte("jpeg bytes")), created.ID, true)
	require.NoError(t, err)
	assert.True(t, img.IsPrimary)
	assert.NotEmpty(t, img.URL)

	// An anonymous visitor can browse and bid.
	anon := api.NewClient(baseURL, nil)
	page, err := anon.Auctions(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	updated, err := anon.PlaceBid(ctx, api.BidRequest{
		AuctionID:  created.ID,
		Amount:     140,
		BidderName: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, 140.0, updated.CurrentPrice)
	assert.Equal(t, 1, updated.BidCount)

	// A losing amount comes back as the server's verbatim error.
	_, err = anon.PlaceBid(ctx, api.BidRequest{
		AuctionID:  created.ID,
		Amount:     140.5,
		BidderName: "bob",
	})
	var apiErr *models.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bid must be at least $141.00", apiErr.Message)

	// Logout invalidates nothing server-side but must round-trip cleanly.
	require.NoError(t, client.Logout(ctx))
	require.NoError(t, sess.Clear(ctx))
	assert.False(t, sess.IsAuthenticated())
}
