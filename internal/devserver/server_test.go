package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auctionhub/internal/config"
	"auctionhub/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL: "http://localhost:5000/api",
		JWTSecret:  "test-secret-key",
		UploadDir:  t.TempDir(),
	}
}

func setupTestApp(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	srv := NewServer(testConfig(t), db, nil)
	return srv, srv.App(), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestAuction(t *testing.T, db *gorm.DB, sellerID uint, price float64) models.Auction {
	t.Helper()
	auction := models.Auction{
		Title:        fmt.Sprintf("Listing at %.0f", price),
		Description:  "A perfectly ordinary test listing with enough words.",
		StartingBid:  price,
		CurrentPrice: price,
		Condition:    "used",
		EndTime:      time.Now().Add(24 * time.Hour),
		IsActive:     true,
		CategoryID:   1,
		SellerID:     sellerID,
	}
	require.NoError(t, db.Create(&auction).Error)
	return auction
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestRegisterAndLogin(t *testing.T) {
	_, app, _ := setupTestApp(t)

	status, body := postJSON(t, app, "/api/register", map[string]string{
		"username":  "alice_bids",
		"email":     "alice@example.com",
		"password":  "password123",
		"firstName": "Alice",
		"lastName":  "Winters",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice_bids", user["username"])
	// The password hash never leaves the server.
	assert.NotContains(t, user, "password")

	status, body = postJSON(t, app, "/api/login", map[string]string{
		"username": "alice_bids",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = postJSON(t, app, "/api/login", map[string]string{
		"username": "alice_bids",
		"password": "wrong",
	}, "")
	require.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", body["error"])
}

func TestRegister_Duplicate(t *testing.T) {
	_, app, db := setupTestApp(t)
	createTestUser(t, db, "taken")

	status, body := postJSON(t, app, "/api/register", map[string]string{
		"username":  "taken",
		"email":     "new@example.com",
		"password":  "password123",
		"firstName": "New",
		"lastName":  "Person",
	}, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Username or email already taken", body["error"])
}

func TestGetAuctions_Pagination(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	for i := 0; i < 15; i++ {
		createTestAuction(t, db, seller.ID, float64(100+i))
	}

	req := httptest.NewRequest("GET", "/api/auctions?page=2&per_page=12", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page models.AuctionPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Len(t, page.Auctions, 3)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 15, page.Total)
}

func TestGetAuctions_SortPriceLow(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	for _, price := range []float64{300, 100, 200} {
		createTestAuction(t, db, seller.ID, price)
	}

	req := httptest.NewRequest("GET", "/api/auctions?sort=price_low", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var page models.AuctionPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Auctions, 3)
	assert.Equal(t, 100.0, page.Auctions[0].CurrentPrice)
	assert.Equal(t, 200.0, page.Auctions[1].CurrentPrice)
	assert.Equal(t, 300.0, page.Auctions[2].CurrentPrice)
}

func TestGetAuctions_Search(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	watch := createTestAuction(t, db, seller.ID, 100)
	require.NoError(t, db.Model(&watch).Update("title", "Vintage Rolex Watch").Error)
	createTestAuction(t, db, seller.ID, 200)

	req := httptest.NewRequest("GET", "/api/auctions?search=rolex", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var page models.AuctionPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Auctions, 1)
	assert.Equal(t, "Vintage Rolex Watch", page.Auctions[0].Title)
}

func TestGetAuction_NotFound(t *testing.T) {
	_, app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/auctions/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Auction not found", body["error"])
}

func TestPlaceBid(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	auction := createTestAuction(t, db, seller.ID, 100)

	status, body := postJSON(t, app, "/api/bids", map[string]any{
		"auctionId":  auction.ID,
		"amount":     110,
		"bidderName": "alice",
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	updated, ok := body["auction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 110.0, updated["current_price"])
	assert.Equal(t, 1.0, updated["bid_count"])

	// Below the minimum increment over the new price.
	status, body = postJSON(t, app, "/api/bids", map[string]any{
		"auctionId":  auction.ID,
		"amount":     110.5,
		"bidderName": "bob",
	}, "")
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Bid must be at least $111.00", body["error"])

	// Price stayed monotonic.
	var stored models.Auction
	require.NoError(t, db.First(&stored, auction.ID).Error)
	assert.Equal(t, 110.0, stored.CurrentPrice)
	assert.Equal(t, 1, stored.BidCount)
}

func TestPlaceBid_EndedAuction(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	auction := createTestAuction(t, db, seller.ID, 100)
	require.NoError(t, db.Model(&auction).Update("end_time", time.Now().Add(-time.Hour)).Error)

	status, body := postJSON(t, app, "/api/bids", map[string]any{
		"auctionId":  auction.ID,
		"amount":     200,
		"bidderName": "alice",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Auction has ended", body["error"])
}

func TestPlaceBid_ShortName(t *testing.T) {
	_, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	auction := createTestAuction(t, db, seller.ID, 100)

	status, body := postJSON(t, app, "/api/bids", map[string]any{
		"auctionId":  auction.ID,
		"amount":     200,
		"bidderName": "a",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Name must be at least 2 characters long", body["error"])
}

func TestCreateAuction_RequiresAuth(t *testing.T) {
	srv, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")

	payload := map[string]any{
		"title":         "A fine grandfather clock",
		"description":   "Late nineteenth century, keeps excellent time, chimes hourly.",
		"startingPrice": 500,
		"endTime":       time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"categoryId":    1,
		"condition":     "used",
	}

	status, body := postJSON(t, app, "/api/auctions", payload, "")
	require.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Authorization required", body["error"])

	token, err := srv.generateToken(seller.ID)
	require.NoError(t, err)

	status, body = postJSON(t, app, "/api/auctions", payload, token)
	require.Equal(t, fiber.StatusCreated, status)
	created, ok := body["auction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A fine grandfather clock", created["title"])
	assert.Equal(t, 500.0, created["current_price"])
	assert.Equal(t, float64(seller.ID), created["seller_id"])
}

func TestCreateAuction_PastEndTime(t *testing.T) {
	srv, app, db := setupTestApp(t)
	seller := createTestUser(t, db, "seller")
	token, err := srv.generateToken(seller.ID)
	require.NoError(t, err)

	status, body := postJSON(t, app, "/api/auctions", map[string]any{
		"title":         "A fine grandfather clock",
		"description":   "Late nineteenth century, keeps excellent time, chimes hourly.",
		"startingPrice": 500,
		"endTime":       time.Now().Add(-time.Hour).Format(time.RFC3339),
		"categoryId":    1,
		"condition":     "used",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "End time must be in the future", body["error"])
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db, SeedOptions{Users: 3, Auctions: 5, MaxBids: 4, SkipBcrypt: true}))

	var categories, users, auctions int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Auction{}).Count(&auctions).Error)
	assert.Equal(t, int64(10), categories)
	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(5), auctions)

	// Every seeded auction keeps a current price at or above its start.
	var seeded []models.Auction
	require.NoError(t, db.Find(&seeded).Error)
	for _, a := range seeded {
		assert.GreaterOrEqual(t, a.CurrentPrice, a.StartingBid)
	}
}
