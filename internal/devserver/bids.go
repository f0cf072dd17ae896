package devserver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"auctionhub/internal/models"
)

// MinBidIncrement is the smallest amount a bid must exceed the current
// price by.
const MinBidIncrement = 1.0

// PlaceBid handles POST /api/bids. Bidding does not require an account;
// bidders are identified by display name.
func (s *Server) PlaceBid(c *fiber.Ctx) error {
	var req struct {
		AuctionID  uint    `json:"auctionId"`
		Amount     float64 `json:"amount"`
		BidderName string  `json:"bidderName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(strings.TrimSpace(req.BidderName)) < 2 {
		return respondError(c, fiber.StatusBadRequest, "Name must be at least 2 characters long")
	}

	var auction models.Auction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&auction, req.AuctionID).Error; err != nil {
			return err
		}
		if !auction.IsActive || !auction.EndTime.After(time.Now()) {
			return fiber.NewError(fiber.StatusBadRequest, "Auction has ended")
		}
		minimum := auction.CurrentPrice + MinBidIncrement
		if req.Amount < minimum {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Bid must be at least $%.2f", minimum))
		}

		bid := models.Bid{
			AuctionID:  auction.ID,
			Amount:     req.Amount,
			BidderName: strings.TrimSpace(req.BidderName),
		}
		if err := tx.Create(&bid).Error; err != nil {
			return err
		}

		// Current price only ever moves up.
		auction.CurrentPrice = req.Amount
		auction.BidCount++
		return tx.Model(&auction).Updates(map[string]any{
			"current_price": auction.CurrentPrice,
			"bid_count":     auction.BidCount,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Auction not found")
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return respondError(c, fe.Code, fe.Message)
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to place bid")
	}

	if err := s.db.Preload("Images").First(&auction, auction.ID).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(fiber.Map{"auction": auction})
}
