package selling

import (
	"math"

	"auctionhub/internal/models"
)

// Marketplace fee rates applied to the estimated sale price.
const (
	FinalValueFeeRate = 0.10
	PaymentFeeRate    = 0.03
)

// FeeBreakdown is the seller-facing fee estimate for a draft listing.
type FeeBreakdown struct {
	EstimatedSalePrice float64
	FinalValueFee      float64
	PaymentFee         float64
	TotalFees          float64
	YouReceive         float64
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// EstimateFees computes the fee breakdown for a draft. The estimated sale
// price is the starting bid, raised to the reserve or Buy It Now price when
// the auction type sets one higher.
func EstimateFees(auctionType models.AuctionType, startingBid, reservePrice, buyNowPrice float64) FeeBreakdown {
	estimated := startingBid
	switch auctionType {
	case models.AuctionTypeReserve:
		estimated = math.Max(estimated, reservePrice)
	case models.AuctionTypeBuyNow:
		estimated = math.Max(estimated, buyNowPrice)
	}

	finalValue := roundCents(estimated * FinalValueFeeRate)
	payment := roundCents(estimated * PaymentFeeRate)
	total := roundCents(finalValue + payment)

	return FeeBreakdown{
		EstimatedSalePrice: roundCents(estimated),
		FinalValueFee:      finalValue,
		PaymentFee:         payment,
		TotalFees:          total,
		YouReceive:         roundCents(estimated - total),
	}
}
