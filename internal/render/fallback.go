package render

import (
	"time"

	"auctionhub/internal/models"
)

// FallbackAuctions returns static demo listings used when the backend is
// unreachable, so the page is never empty.
func FallbackAuctions(now time.Time) []models.Auction {
	return []models.Auction{
		{
			ID:           1,
			Title:        "Vintage Rolex Submariner",
			Description:  "Authentic vintage Rolex Submariner in excellent condition",
			CurrentPrice: 8500,
			BidCount:     23,
			EndTime:      now.Add(6 * time.Hour),
			IsActive:     true,
		},
		{
			ID:           2,
			Title:        "Gaming Laptop RTX 4080",
			Description:  "High-performance gaming laptop with RTX 4080",
			CurrentPrice: 1850,
			BidCount:     15,
			EndTime:      now.Add(9 * time.Hour),
			IsActive:     true,
		},
	}
}
