package selling

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"time"

	"auctionhub/internal/api"
	"auctionhub/internal/clock"
	"auctionhub/internal/models"
	"auctionhub/internal/notify"
	"auctionhub/internal/observability"
	"auctionhub/internal/validation"
)

// Creator is the slice of the API client the workflow submits through.
type Creator interface {
	CreateAuction(ctx context.Context, req api.CreateAuctionRequest) (*models.Auction, error)
	UploadImage(ctx context.Context, filename string, content io.Reader, auctionID uint, isPrimary bool) (*models.AuctionImage, error)
}

// SubmitResult reports the outcome of a successful submission. Failed lists
// the filenames whose upload failed; the listing itself still exists.
type SubmitResult struct {
	Auction  *models.Auction
	Uploaded int
	Failed   []string
}

// Workflow drives a draft listing from form state to a created auction:
// validate, create, upload images, clear the draft.
type Workflow struct {
	creator  Creator
	images   *ImageSet
	drafts   *DraftManager
	notifier *notify.Surface
	logger   *observability.Logger
	clock    clock.Clock
	limits   validation.SellFormLimits
}

// NewWorkflow wires a selling workflow. drafts and notifier may be nil.
func NewWorkflow(creator Creator, images *ImageSet, drafts *DraftManager, notifier *notify.Surface, logger *observability.Logger, clk clock.Clock) *Workflow {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Workflow{
		creator:  creator,
		images:   images,
		drafts:   drafts,
		notifier: notifier,
		logger:   logger,
		clock:    clk,
		limits:   validation.DefaultSellFormLimits(),
	}
}

func (w *Workflow) notifyError(msg string) {
	if w.notifier != nil {
		w.notifier.Error(msg)
	}
}

// validate checks the full draft: field rules first, then images, type,
// payment methods, and the type-specific price relationships.
func (w *Workflow) validate(draft models.DraftListing) error {
	form := validation.SellForm{
		Title:         draft.Title,
		Description:   draft.Description,
		StartingPrice: draft.StartingBid,
		CategoryID:    draft.CategoryID,
		Condition:     draft.Condition,
		DurationHours: draft.DurationHours,
	}
	if draft.AuctionType == models.AuctionTypeReserve && draft.ReservePrice > 0 {
		reserve := draft.ReservePrice
		form.ReservePrice = &reserve
	}
	if err := validation.ValidateSell(form, w.limits); err != nil {
		return err
	}
	if w.images.Count() == 0 {
		return models.NewValidationError("Please upload at least one image of your item.")
	}
	if draft.AuctionType == "" {
		return models.NewValidationError("Please select an auction type.")
	}
	if len(draft.PaymentMethods) == 0 {
		return models.NewValidationError("Please select at least one payment method.")
	}
	if draft.AuctionType == models.AuctionTypeReserve && draft.ReservePrice <= draft.StartingBid {
		return models.NewValidationError("Reserve price must be higher than starting bid.")
	}
	if draft.AuctionType == models.AuctionTypeBuyNow && draft.BuyNowPrice <= draft.StartingBid {
		return models.NewValidationError("Buy It Now price must be higher than starting bid.")
	}
	return nil
}

func (w *Workflow) request(draft models.DraftListing) api.CreateAuctionRequest {
	req := api.CreateAuctionRequest{
		Title:         draft.Title,
		Description:   draft.Description,
		StartingPrice: draft.StartingBid,
		EndTime:       w.clock.Now().Add(time.Duration(draft.DurationHours) * time.Hour),
		CategoryID:    draft.CategoryID,
		Condition:     draft.Condition,
		ShippingCost:  draft.ShippingCost,
		Location:      draft.Location,
	}
	if draft.AuctionType == models.AuctionTypeReserve && draft.ReservePrice > 0 {
		reserve := draft.ReservePrice
		req.ReservePrice = &reserve
	}
	if draft.AuctionType == models.AuctionTypeBuyNow && draft.BuyNowPrice > 0 {
		buyNow := draft.BuyNowPrice
		req.BuyNowPrice = &buyNow
	}
	return req
}

// Submit validates the draft, creates the listing, and uploads the selected
// images in order, the first flagged primary. A failed image upload is logged
// and collected but does not fail the submission; the saved draft is cleared
// only once the listing exists.
func (w *Workflow) Submit(ctx context.Context, draft models.DraftListing) (*SubmitResult, error) {
	if err := w.validate(draft); err != nil {
		w.notifyError(err.Error())
		return nil, err
	}

	auction, err := w.creator.CreateAuction(ctx, w.request(draft))
	if err != nil {
		w.logger.Error("auction creation failed", "title", draft.Title, "error", err)
		w.notifyError(err.Error())
		return nil, err
	}

	result := &SubmitResult{Auction: auction}
	for i, img := range w.images.Images() {
		_, err := w.creator.UploadImage(ctx, img.Name, bytes.NewReader(img.Content), auction.ID, i == 0)
		if err != nil {
			w.logger.Warn("image upload failed", "auction_id", auction.ID, "filename", img.Name, "error", err)
			result.Failed = append(result.Failed, img.Name)
			continue
		}
		result.Uploaded++
	}

	if w.drafts != nil {
		if err := w.drafts.Clear(ctx); err != nil {
			w.logger.Warn("draft clear failed", "error", err)
		}
	}
	w.images.Clear()

	if w.notifier != nil {
		if len(result.Failed) > 0 {
			w.notifier.Warning(models.NewPartialUploadError(result.Failed).Error())
		} else {
			w.notifier.Success("Auction created successfully!")
		}
	}
	return result, nil
}

// Preview is the seller-facing summary of a draft before submission.
type Preview struct {
	Title        string
	Description  string
	Condition    string
	StartingBid  float64
	ReservePrice float64
	BuyNowPrice  float64
	ShippingCost float64
	Duration     string
	Fees         FeeBreakdown
}

// BuildPreview assembles the preview view model for a draft. It does not
// validate; an incomplete draft previews with empty fields.
func BuildPreview(draft models.DraftListing) Preview {
	p := Preview{
		Title:        draft.Title,
		Description:  draft.Description,
		Condition:    draft.Condition,
		StartingBid:  draft.StartingBid,
		ShippingCost: draft.ShippingCost,
		Duration:     durationLabel(draft.DurationHours),
		Fees:         EstimateFees(draft.AuctionType, draft.StartingBid, draft.ReservePrice, draft.BuyNowPrice),
	}
	if draft.AuctionType == models.AuctionTypeReserve {
		p.ReservePrice = draft.ReservePrice
	}
	if draft.AuctionType == models.AuctionTypeBuyNow {
		p.BuyNowPrice = draft.BuyNowPrice
	}
	return p
}

func durationLabel(hours int) string {
	switch {
	case hours <= 0:
		return ""
	case hours%24 == 0 && hours >= 24:
		days := hours / 24
		if days == 1 {
			return "1 day"
		}
		return strconv.Itoa(days) + " days"
	case hours == 1:
		return "1 hour"
	default:
		return strconv.Itoa(hours) + " hours"
	}
}
