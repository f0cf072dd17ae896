package devserver

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"auctionhub/internal/api"
	"auctionhub/internal/models"
	"auctionhub/internal/validation"
)

// GetCategories handles GET /api/categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(categories)
}

// GetAuctions handles GET /api/auctions with pagination, filters, and sort.
func (s *Server) GetAuctions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 12)
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}

	query := s.db.Model(&models.Auction{})
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like)
	}

	switch c.Query("sort", api.SortEndingSoon) {
	case api.SortNewest:
		query = query.Order("created_at DESC")
	case api.SortPriceLow:
		query = query.Order("current_price ASC")
	case api.SortPriceHigh:
		query = query.Order("current_price DESC")
	case api.SortMostBids:
		query = query.Order("bid_count DESC")
	default:
		query = query.Order("end_time ASC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	var auctions []models.Auction
	if err := query.Preload("Images").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&auctions).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.JSON(models.AuctionPage{
		Auctions:    auctions,
		CurrentPage: page,
		Pages:       int(math.Ceil(float64(total) / float64(perPage))),
		Total:       int(total),
	})
}

// GetAuction handles GET /api/auctions/:id.
func (s *Server) GetAuction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	var auction models.Auction
	if err := s.db.Preload("Images").First(&auction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Auction not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(fiber.Map{"auction": auction})
}

// CreateAuction handles POST /api/auctions.
func (s *Server) CreateAuction(c *fiber.Ctx) error {
	var req struct {
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		StartingPrice float64   `json:"startingPrice"`
		ReservePrice  *float64  `json:"reservePrice"`
		BuyNowPrice   *float64  `json:"buyNowPrice"`
		EndTime       time.Time `json:"endTime"`
		CategoryID    uint      `json:"categoryId"`
		Condition     string    `json:"condition"`
		ShippingCost  float64   `json:"shippingCost"`
		Location      string    `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validation.ValidateSell(validation.SellForm{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		CategoryID:    req.CategoryID,
		Condition:     req.Condition,
		DurationHours: 1, // duration is expressed as an absolute end time here
	}, validation.DefaultSellFormLimits()); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	if !req.EndTime.After(time.Now()) {
		return respondError(c, fiber.StatusBadRequest, "End time must be in the future")
	}

	auction := models.Auction{
		Title:        req.Title,
		Description:  req.Description,
		StartingBid:  req.StartingPrice,
		CurrentPrice: req.StartingPrice,
		ShippingCost: req.ShippingCost,
		Condition:    req.Condition,
		Location:     req.Location,
		EndTime:      req.EndTime,
		IsActive:     true,
		CategoryID:   req.CategoryID,
		SellerID:     c.Locals("userID").(uint),
	}
	if req.ReservePrice != nil {
		auction.ReservePrice = *req.ReservePrice
	}
	if req.BuyNowPrice != nil {
		auction.BuyNowPrice = *req.BuyNowPrice
	}

	if err := s.db.Create(&auction).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create auction")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"auction": auction})
}
