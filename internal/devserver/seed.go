package devserver

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"auctionhub/internal/models"
)

// SeedOptions controls how much demo data Seed generates.
type SeedOptions struct {
	Users    int
	Auctions int
	MaxBids  int
	// SkipBcrypt stores plaintext passwords; only for fast local seeding.
	SkipBcrypt bool
}

// DefaultSeedOptions is the preset used by the seed command.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Users: 10, Auctions: 36, MaxBids: 12}
}

var seedCategories = []models.Category{
	{Name: "electronics", Description: "Phones, computers, and gadgets", Icon: "fas fa-laptop"},
	{Name: "jewelry", Description: "Watches, rings, and fine jewelry", Icon: "fas fa-gem"},
	{Name: "books", Description: "Rare books and first editions", Icon: "fas fa-book"},
	{Name: "fashion", Description: "Designer clothing and accessories", Icon: "fas fa-tshirt"},
	{Name: "home", Description: "Furniture and home decor", Icon: "fas fa-couch"},
	{Name: "vehicles", Description: "Cars, motorcycles, and boats", Icon: "fas fa-car"},
	{Name: "art", Description: "Paintings, prints, and sculpture", Icon: "fas fa-palette"},
	{Name: "antiques", Description: "Vintage and antique items", Icon: "fas fa-chess-rook"},
	{Name: "sports", Description: "Memorabilia and equipment", Icon: "fas fa-futbol"},
	{Name: "other", Description: "Everything else", Icon: "fas fa-tag"},
}

// Seed populates the database with demo categories, users, auctions, and
// bids. It is idempotent per process run but not across runs; intended for
// fresh development databases.
func Seed(db *gorm.DB, opts SeedOptions) error {
	gofakeit.Seed(time.Now().UnixNano())

	for i := range seedCategories {
		if err := db.FirstOrCreate(&seedCategories[i], models.Category{Name: seedCategories[i].Name}).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	users, err := seedUsers(db, opts)
	if err != nil {
		return err
	}
	return seedAuctions(db, opts, users)
}

func seedUsers(db *gorm.DB, opts SeedOptions) ([]models.User, error) {
	password := "password123"
	stored := password
	if !opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		stored = string(hashed)
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			Password:  stored,
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Phone:     gofakeit.Phone(),
			Address:   gofakeit.Address().Address,
			IsAdmin:   i == 0,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func seedAuctions(db *gorm.DB, opts SeedOptions, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	conditions := []string{"new", "like-new", "used", "for-parts"}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < opts.Auctions; i++ {
		seller := users[r.Intn(len(users))]
		category := seedCategories[r.Intn(len(seedCategories))]
		starting := gofakeit.Price(10, 5000)

		auction := models.Auction{
			Title:        gofakeit.ProductName(),
			Description:  gofakeit.Paragraph(1, 3, 8, " "),
			StartingBid:  starting,
			CurrentPrice: starting,
			ShippingCost: gofakeit.Price(0, 30),
			Condition:    conditions[r.Intn(len(conditions))],
			Location:     gofakeit.City(),
			EndTime:      time.Now().Add(time.Duration(r.Intn(14*24)+1) * time.Hour),
			IsActive:     true,
			CategoryID:   category.ID,
			SellerID:     seller.ID,
		}
		// A third of listings carry a reserve, a third a buy-now price.
		switch r.Intn(3) {
		case 1:
			auction.ReservePrice = starting * (1.5 + r.Float64())
		case 2:
			auction.BuyNowPrice = starting * (2 + r.Float64())
		}
		if err := db.Create(&auction).Error; err != nil {
			return fmt.Errorf("seed auctions: %w", err)
		}

		image := models.AuctionImage{
			AuctionID: auction.ID,
			URL:       fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			IsPrimary: true,
		}
		if err := db.Create(&image).Error; err != nil {
			return fmt.Errorf("seed auctions: %w", err)
		}

		if err := seedBids(db, r, &auction, opts.MaxBids); err != nil {
			return err
		}
	}
	return nil
}

func seedBids(db *gorm.DB, r *rand.Rand, auction *models.Auction, maxBids int) error {
	if maxBids <= 0 {
		return nil
	}
	price := auction.StartingBid
	count := r.Intn(maxBids + 1)
	for i := 0; i < count; i++ {
		price += gofakeit.Price(1, 50)
		bid := models.Bid{
			AuctionID:  auction.ID,
			Amount:     price,
			BidderName: gofakeit.FirstName(),
		}
		if err := db.Create(&bid).Error; err != nil {
			return fmt.Errorf("seed bids: %w", err)
		}
	}
	if count > 0 {
		auction.CurrentPrice = price
		auction.BidCount = count
		if err := db.Model(auction).Updates(map[string]any{
			"current_price": price,
			"bid_count":     count,
		}).Error; err != nil {
			return fmt.Errorf("seed bids: %w", err)
		}
	}
	return nil
}
