// Package render transforms auction records into display view models. It is
// pure data-to-data: no network, no rendering surface.
package render

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"auctionhub/internal/models"
)

// DescriptionBudget is the character budget for card descriptions.
const DescriptionBudget = 100

// PlaceholderImage is shown when no image can be resolved at all.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Auction+Item"

// Status labels for a listing card.
const (
	StatusLive  = "LIVE"
	StatusEnded = "ENDED"
)

var printer = message.NewPrinter(language.English)

// fallbackImages maps title keywords to stock imagery, checked in order.
var fallbackImages = []struct {
	keywords []string
	url      string
}{
	{[]string{"watch", "rolex"}, "RolexSubmariner.jpg"},
	{[]string{"laptop", "rtx"}, "Rtx4070.jpg"},
	{[]string{"vase", "ming"}, "mingvases.jpeg"},
	{[]string{"ring", "diamond"}, "Ring2C.jpg"},
	{[]string{"mustang", "car"}, "Mustang.jpg"},
	{[]string{"painting", "art"}, "oilpaint.jpg"},
}

// ListingCard is everything a UI needs to draw one auction.
type ListingCard struct {
	ID            uint
	Title         string
	Description   string
	Price         string
	BidCount      int
	Status        string
	Image         string
	EndTime       time.Time
	TimeRemaining string
}

// NewListingCard builds the card view model for one auction as of now.
func NewListingCard(a models.Auction, now time.Time) ListingCard {
	status := StatusEnded
	if a.IsActive {
		status = StatusLive
	}
	return ListingCard{
		ID:            a.ID,
		Title:         a.Title,
		Description:   TruncateText(a.Description, DescriptionBudget),
		Price:         FormatCurrency(a.CurrentPrice),
		BidCount:      a.BidCount,
		Status:        status,
		Image:         DisplayImage(a),
		EndTime:       a.EndTime,
		TimeRemaining: FormatTimeRemaining(a.EndTime.Sub(now)),
	}
}

// NewListingCards maps a fetched page to cards.
func NewListingCards(auctions []models.Auction, now time.Time) []ListingCard {
	cards := make([]ListingCard, len(auctions))
	for i, a := range auctions {
		cards[i] = NewListingCard(a, now)
	}
	return cards
}

// CategoryCard is the display shape of one category.
type CategoryCard struct {
	ID          uint
	Name        string
	Description string
	Icon        string
}

// NewCategoryCards maps categories to cards, defaulting the icon.
func NewCategoryCards(categories []models.Category) []CategoryCard {
	cards := make([]CategoryCard, len(categories))
	for i, c := range categories {
		icon := c.Icon
		if icon == "" {
			icon = "fas fa-tag"
		}
		cards[i] = CategoryCard{ID: c.ID, Name: c.Name, Description: c.Description, Icon: icon}
	}
	return cards
}

// FormatCurrency renders a dollar amount with locale grouping. Whole
// amounts drop the cents, fractional ones keep two digits.
func FormatCurrency(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("$%d", int64(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

// TruncateText cuts text to maxLen characters, marking the cut with an
// ellipsis.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// DisplayImage resolves the image to show for a listing: the first supplied
// image, a keyword match against the title, or a generic placeholder.
func DisplayImage(a models.Auction) string {
	if len(a.Images) > 0 {
		return a.Images[0].URL
	}
	title := strings.ToLower(a.Title)
	for _, fb := range fallbackImages {
		for _, kw := range fb.keywords {
			if strings.Contains(title, kw) {
				return fb.url
			}
		}
	}
	return PlaceholderImage
}
