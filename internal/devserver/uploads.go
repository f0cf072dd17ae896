package devserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"auctionhub/internal/models"
)

// UploadImage handles POST /api/upload (multipart). The file part is named
// "file"; auction_id and is_primary arrive as form fields. Files land in the
// configured upload directory under a generated name.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Missing file")
	}

	auctionID, err := strconv.ParseUint(c.FormValue("auction_id"), 10, 32)
	if err != nil || auctionID == 0 {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction_id")
	}
	isPrimary, _ := strconv.ParseBool(c.FormValue("is_primary"))

	var auction models.Auction
	if err := s.db.First(&auction, auctionID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "Auction not found")
	}
	if uid, ok := c.Locals("userID").(uint); !ok || auction.SellerID != uid {
		return respondError(c, fiber.StatusForbidden, "Not the seller of this auction")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to prepare upload directory")
	}
	storedName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(s.config.UploadDir, storedName)); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	image := models.AuctionImage{
		AuctionID: uint(auctionID),
		URL:       "/uploads/" + storedName,
		IsPrimary: isPrimary,
	}
	if err := s.db.Create(&image).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to record image")
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}
