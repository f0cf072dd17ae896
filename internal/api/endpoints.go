package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"auctionhub/internal/models"
)

// Sort keys accepted by the auctions listing.
const (
	SortEndingSoon = "ending_soon"
	SortNewest     = "newest"
	SortPriceLow   = "price_low"
	SortPriceHigh  = "price_high"
	SortMostBids   = "most_bids"
)

// ListOptions narrows a GET /auctions call. Zero values are omitted from
// the query.
type ListOptions struct {
	Page       int
	PerPage    int
	CategoryID uint
	Search     string
	Sort       string
}

func (o ListOptions) query() string {
	q := url.Values{}
	page := o.Page
	if page < 1 {
		page = 1
	}
	perPage := o.PerPage
	if perPage < 1 {
		perPage = 12
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if o.CategoryID != 0 {
		q.Set("category_id", strconv.FormatUint(uint64(o.CategoryID), 10))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	return q.Encode()
}

// Categories fetches the category reference data.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.Get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Auctions fetches one page of listings.
func (c *Client) Auctions(ctx context.Context, opts ListOptions) (*models.AuctionPage, error) {
	var out models.AuctionPage
	if err := c.Get(ctx, "/auctions?"+opts.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type auctionEnvelope struct {
	Auction models.Auction `json:"auction"`
}

// Auction fetches a single listing's detail.
func (c *Client) Auction(ctx context.Context, id uint) (*models.Auction, error) {
	var out auctionEnvelope
	if err := c.Get(ctx, fmt.Sprintf("/auctions/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Auction, nil
}

// BidRequest is the POST /bids payload.
type BidRequest struct {
	AuctionID  uint    `json:"auctionId"`
	Amount     float64 `json:"amount"`
	BidderName string  `json:"bidderName"`
}

// PlaceBid submits a bid and returns the updated listing.
func (c *Client) PlaceBid(ctx context.Context, req BidRequest) (*models.Auction, error) {
	var out auctionEnvelope
	if err := c.Post(ctx, "/bids", req, &out); err != nil {
		return nil, err
	}
	return &out.Auction, nil
}

// AuthResponse is the shape of successful login/register responses.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and returns the issued credential with the profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Post(ctx, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterRequest is the POST /register payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Register creates an account and returns the issued credential.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Post(ctx, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/logout", nil, nil)
}

// CreateAuctionRequest is the POST /auctions payload.
type CreateAuctionRequest struct {
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

// CreateAuction creates a listing and returns the stored record.
func (c *Client) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*models.Auction, error) {
	var out auctionEnvelope
	if err := c.Post(ctx, "/auctions", req, &out); err != nil {
		return nil, err
	}
	return &out.Auction, nil
}

// UploadImage uploads one image for an auction. The first uploaded image of
// a listing is flagged primary.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader, auctionID uint, isPrimary bool) (*models.AuctionImage, error) {
	metadata := map[string]string{
		"auction_id": strconv.FormatUint(uint64(auctionID), 10),
		"is_primary": strconv.FormatBool(isPrimary),
	}
	var out models.AuctionImage
	if err := c.UploadFile(ctx, filename, content, metadata, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
