// Package models contains data structures for the AuctionHub domain.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account. The client only ever reads the
// profile fields; the password column exists for the development backend.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category is immutable reference data fetched once per page load.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Auction is a listing with live price/bid state. CurrentPrice is
// monotonically non-decreasing; the server enforces that, the client
// only displays it.
type Auction struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	StartingBid  float64        `json:"starting_bid"`
	CurrentPrice float64        `json:"current_price"`
	ReservePrice float64        `json:"reserve_price,omitempty"`
	BuyNowPrice  float64        `json:"buy_now_price,omitempty"`
	ShippingCost float64        `json:"shipping_cost"`
	Condition    string         `json:"condition"`
	Location     string         `json:"location"`
	BidCount     int            `json:"bid_count"`
	EndTime      time.Time      `json:"end_time"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CategoryID   uint           `json:"category_id"`
	SellerID     uint           `json:"seller_id"`
	Images       []AuctionImage `gorm:"foreignKey:AuctionID" json:"images,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AuctionImage is one stored photo of a listing. Exactly one image per
// auction carries IsPrimary.
type AuctionImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuctionID uint      `gorm:"index;not null" json:"auction_id"`
	URL       string    `gorm:"not null" json:"url"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Bid records one accepted bid. Bidding does not require an account, so
// the bidder is identified by display name only.
type Bid struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuctionID  uint      `gorm:"index;not null" json:"auction_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	BidderName string    `gorm:"not null" json:"bidder_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuctionPage is the paginated response shape of GET /auctions.
type AuctionPage struct {
	Auctions    []Auction `json:"auctions"`
	CurrentPage int       `json:"current_page"`
	Pages       int       `json:"pages"`
	Total       int       `json:"total"`
}

// AuctionType selects how a listing can close.
type AuctionType string

const (
	AuctionTypeStandard AuctionType = "standard"
	AuctionTypeReserve  AuctionType = "reserve"
	AuctionTypeBuyNow   AuctionType = "buynow"
)

// DraftListing is a not-yet-submitted listing under authorship. It is
// persisted client-side and restored verbatim on the next visit.
type DraftListing struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	CategoryID     uint        `json:"category_id"`
	Condition      string      `json:"condition"`
	StartingBid    float64     `json:"starting_bid"`
	ReservePrice   float64     `json:"reserve_price,omitempty"`
	BuyNowPrice    float64     `json:"buy_now_price,omitempty"`
	ShippingCost   float64     `json:"shipping_cost"`
	Location       string      `json:"location"`
	DurationHours  int         `json:"duration_hours"`
	AuctionType    AuctionType `json:"auction_type"`
	PaymentMethods []string    `json:"payment_methods"`
	ImageCount     int         `json:"image_count"`
}
