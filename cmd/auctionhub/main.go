// Command auctionhub is a terminal client for the auction marketplace: it
// browses listings, places bids, and creates auctions against a configured
// backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"auctionhub/internal/api"
	"auctionhub/internal/bidding"
	"auctionhub/internal/clock"
	"auctionhub/internal/config"
	"auctionhub/internal/countdown"
	"auctionhub/internal/models"
	"auctionhub/internal/notify"
	"auctionhub/internal/observability"
	"auctionhub/internal/render"
	"auctionhub/internal/selling"
	"auctionhub/internal/session"
	"auctionhub/internal/store"
	"auctionhub/internal/validation"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  auctionhub browse [page] [search]       - Browse listings")
	fmt.Println("  auctionhub categories                   - List categories")
	fmt.Println("  auctionhub show <auction_id>            - Show one listing")
	fmt.Println("  auctionhub watch <auction_id>           - Live countdown for a listing")
	fmt.Println("  auctionhub bid <auction_id> <amount> <name> - Place a bid")
	fmt.Println("  auctionhub login <username> <password>  - Log in")
	fmt.Println("  auctionhub logout                       - Log out")
	fmt.Println("  auctionhub sell [flags]                 - Create a listing (see sell -h)")
	os.Exit(1)
}

// app bundles the client-side stack a command works with.
type app struct {
	cfg      *config.Config
	store    store.Store
	session  *session.Manager
	client   *api.Client
	notifier *notify.Surface
	logger   *observability.Logger
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(nil)

	var st store.Store
	if cfg.RedisURL != "" {
		rs, err := store.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st = rs
	} else {
		st = store.NewMemory()
	}

	sess := session.NewManager(ctx, st, logger)
	notifier := notify.NewSurface(notify.WithOnChange(printNotification))

	return &app{
		cfg:      cfg,
		store:    st,
		session:  sess,
		client:   api.NewClient(cfg.APIBaseURL, sess),
		notifier: notifier,
		logger:   logger,
	}, nil
}

func printNotification(n *notify.Notification) {
	if n == nil {
		return
	}
	fmt.Printf("[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	switch os.Args[1] {
	case "browse":
		err = a.browse(ctx, os.Args[2:])
	case "categories":
		err = a.categories(ctx)
	case "show":
		err = a.show(ctx, os.Args[2:])
	case "watch":
		err = a.watch(ctx, os.Args[2:])
	case "bid":
		err = a.bid(ctx, os.Args[2:])
	case "login":
		err = a.login(ctx, os.Args[2:])
	case "logout":
		err = a.logout(ctx)
	case "sell":
		err = a.sell(ctx, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func (a *app) browse(ctx context.Context, args []string) error {
	opts := api.ListOptions{Page: 1, Sort: api.SortEndingSoon}
	if len(args) > 0 {
		if p, err := strconv.Atoi(args[0]); err == nil {
			opts.Page = p
		}
	}
	if len(args) > 1 {
		opts.Search = strings.Join(args[1:], " ")
	}

	now := clock.NewSystem().Now()
	page, err := a.client.Auctions(ctx, opts)
	if err != nil {
		var netErr *models.NetworkError
		if !errors.As(err, &netErr) {
			return err
		}
		// Offline: show the built-in demo listings instead of nothing.
		a.notifier.Warning("Failed to load auctions")
		demo := render.FallbackAuctions(now)
		printCards(render.NewListingCards(demo, now))
		return nil
	}

	printCards(render.NewListingCards(page.Auctions, now))
	printPagination(render.NewPagination(page.CurrentPage, page.Pages))
	return nil
}

func printCards(cards []render.ListingCard) {
	for _, card := range cards {
		fmt.Printf("#%d  %-8s %s\n", card.ID, card.Status, card.Title)
		fmt.Printf("    %s | %d bids | %s\n", card.Price, card.BidCount, card.TimeRemaining)
		if card.Description != "" {
			fmt.Printf("    %s\n", card.Description)
		}
	}
	if len(cards) == 0 {
		fmt.Println("No auctions found.")
	}
}

func printPagination(p render.Pagination) {
	if len(p.Pages) == 0 {
		return
	}
	parts := make([]string, 0, len(p.Pages)+2)
	if p.HasPrev {
		parts = append(parts, "Previous")
	}
	for _, n := range p.Pages {
		if n == p.Current {
			parts = append(parts, fmt.Sprintf("[%d]", n))
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if p.HasNext {
		parts = append(parts, "Next")
	}
	fmt.Println(strings.Join(parts, " "))
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	for _, card := range render.NewCategoryCards(categories) {
		fmt.Printf("%-12s (%s)  %s\n", card.Name, card.Icon, card.Description)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := parseAuctionID(args)
	if err != nil {
		return err
	}
	auction, err := a.client.Auction(ctx, id)
	if err != nil {
		return err
	}
	card := render.NewListingCard(*auction, clock.NewSystem().Now())
	fmt.Printf("#%d %s [%s]\n", card.ID, card.Title, card.Status)
	fmt.Printf("Current price: %s  (%d bids)\n", card.Price, card.BidCount)
	fmt.Printf("Time remaining: %s\n", card.TimeRemaining)
	fmt.Printf("Image: %s\n", card.Image)
	fmt.Println(auction.Description)
	return nil
}

// watch runs the countdown loop for one listing until it ends or the user
// interrupts.
func (a *app) watch(ctx context.Context, args []string) error {
	id, err := parseAuctionID(args)
	if err != nil {
		return err
	}
	auction, err := a.client.Auction(ctx, id)
	if err != nil {
		return err
	}

	registry := countdown.NewRegistry()
	timer := registry.Put(auction.ID, auction.EndTime)
	scheduler := countdown.NewScheduler(registry, nil)

	fmt.Printf("Watching #%d %s\n", auction.ID, auction.Title)
	go func() {
		last := ""
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(countdown.TickPeriod / 4):
			}
			if label := timer.Label(); label != last {
				last = label
				fmt.Printf("\r%-20s", label)
				if label == render.EndedLabel {
					// Emptying the registry ends the scheduler loop.
					registry.Remove(auction.ID)
					return
				}
			}
		}
	}()
	scheduler.Run(ctx, clock.NewTicker(countdown.TickPeriod))
	fmt.Println()
	return nil
}

func (a *app) bid(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: auctionhub bid <auction_id> <amount> <name>")
	}
	id, err := parseAuctionID(args[:1])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %q", args[1])
	}
	name := strings.Join(args[2:], " ")

	auction, err := a.client.Auction(ctx, id)
	if err != nil {
		return err
	}

	workflow := bidding.NewWorkflow(a.client, nil, a.notifier, a.logger)
	updated, err := workflow.Place(ctx, bidding.Input{
		AuctionID:    auction.ID,
		Amount:       amount,
		BidderName:   name,
		CurrentPrice: auction.CurrentPrice,
	})
	if err != nil {
		return nil // already surfaced through the notifier
	}
	fmt.Printf("New price: %s (%d bids)\n", render.FormatCurrency(updated.CurrentPrice), updated.BidCount)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: auctionhub login <username> <password>")
	}
	if err := validation.ValidateLogin(args[0], args[1]); err != nil {
		return err
	}
	auth, err := a.client.Login(ctx, api.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	a.session.Save(ctx, auth.Token, &auth.User)
	fmt.Printf("Logged in as %s\n", auth.User.Username)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if a.session.IsAuthenticated() {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn("server-side logout failed", "error", err)
		}
	}
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) sell(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sell", flag.ExitOnError)
	title := fs.String("title", "", "listing title")
	description := fs.String("description", "", "listing description")
	categoryID := fs.Uint("category", 0, "category ID")
	condition := fs.String("condition", "", "item condition")
	startingBid := fs.Float64("starting-bid", 0, "starting bid")
	auctionType := fs.String("type", "standard", "auction type: standard, reserve, buynow")
	reserve := fs.Float64("reserve", 0, "reserve price (type=reserve)")
	buyNow := fs.Float64("buy-now", 0, "buy-it-now price (type=buynow)")
	shipping := fs.Float64("shipping", 0, "shipping cost")
	location := fs.String("location", "", "item location")
	duration := fs.Int("duration", 168, "auction duration in hours")
	payment := fs.String("payment", "card", "comma-separated payment methods")
	images := fs.String("images", "", "comma-separated image file paths")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.IsAuthenticated() {
		return errors.New("log in before creating a listing")
	}

	if *shipping == 0 {
		if estimate, ok := selling.EstimateShipping(categoryName(ctx, a, *categoryID)); ok {
			*shipping = estimate
			a.notifier.Success(fmt.Sprintf("Suggested shipping cost: $%.2f", estimate))
		}
	}

	draft := models.DraftListing{
		Title:          *title,
		Description:    *description,
		CategoryID:     *categoryID,
		Condition:      *condition,
		StartingBid:    *startingBid,
		ReservePrice:   *reserve,
		BuyNowPrice:    *buyNow,
		ShippingCost:   *shipping,
		Location:       *location,
		DurationHours:  *duration,
		AuctionType:    models.AuctionType(*auctionType),
		PaymentMethods: strings.Split(*payment, ","),
	}

	imageSet := selling.NewImageSet(a.notifier)
	for _, path := range strings.Split(*images, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image %s: %w", path, err)
		}
		imageSet.Add(selling.Candidate{
			Name:    filepath.Base(path),
			MIME:    mime.TypeByExtension(filepath.Ext(path)),
			Size:    int64(len(content)),
			Content: content,
		})
	}
	draft.ImageCount = imageSet.Count()

	fees := selling.EstimateFees(draft.AuctionType, draft.StartingBid, draft.ReservePrice, draft.BuyNowPrice)
	fmt.Printf("Estimated sale price: %s\n", render.FormatCurrency(fees.EstimatedSalePrice))
	fmt.Printf("Final value fee:      %s\n", render.FormatCurrency(fees.FinalValueFee))
	fmt.Printf("Payment fee:          %s\n", render.FormatCurrency(fees.PaymentFee))
	fmt.Printf("You receive:          %s\n", render.FormatCurrency(fees.YouReceive))

	drafts := selling.NewDraftManager(a.store, a.logger)
	if err := drafts.SaveNow(ctx, draft); err != nil {
		a.logger.Warn("draft save failed", "error", err)
	}

	workflow := selling.NewWorkflow(a.client, imageSet, drafts, a.notifier, a.logger, nil)
	result, err := workflow.Submit(ctx, draft)
	if err != nil {
		return nil // surfaced through the notifier
	}
	fmt.Printf("Created auction #%d (%d images uploaded)\n", result.Auction.ID, result.Uploaded)
	if len(result.Failed) > 0 {
		fmt.Printf("Failed uploads: %s\n", strings.Join(result.Failed, ", "))
	}
	return nil
}

func categoryName(ctx context.Context, a *app, id uint) string {
	if id == 0 {
		return ""
	}
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return ""
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func parseAuctionID(args []string) (uint, error) {
	if len(args) < 1 {
		return 0, errors.New("auction ID required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid auction ID: %q", args[0])
	}
	return uint(id), nil
}
