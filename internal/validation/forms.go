// Package validation provides pure form-validation rules. Each function
// returns the first violated rule as a ValidationError, or nil when the
// form is valid.
package validation

import (
	"regexp"
	"strings"

	"auctionhub/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupForm carries the fields of the registration form. ConfirmPassword
// is only checked when the form rendered a confirmation field.
type SignupForm struct {
	Username           string
	Email              string
	Password           string
	FirstName          string
	LastName           string
	ConfirmPassword    string
	HasConfirmPassword bool
}

// ValidateSignup checks the registration rules in form order.
func ValidateSignup(f SignupForm) error {
	if len(f.Username) < 3 {
		return models.NewValidationError("Username must be at least 3 characters long")
	}
	if !emailRegex.MatchString(f.Email) {
		return models.NewValidationError("Please enter a valid email address")
	}
	if len(f.Password) < 6 {
		return models.NewValidationError("Password must be at least 6 characters long")
	}
	if strings.TrimSpace(f.FirstName) == "" || strings.TrimSpace(f.LastName) == "" {
		return models.NewValidationError("First name and last name are required")
	}
	if f.HasConfirmPassword && f.ConfirmPassword != f.Password {
		return models.NewValidationError("Passwords do not match")
	}
	return nil
}

// ValidateLogin checks that both login fields are filled.
func ValidateLogin(username, password string) error {
	if username == "" || password == "" {
		return models.NewValidationError("Please fill in all fields")
	}
	return nil
}

// SellFormLimits are the configurable bounds of the sell form.
type SellFormLimits struct {
	MinTitleLen       int
	MinDescriptionLen int
	MaxStartingPrice  float64
}

// DefaultSellFormLimits mirrors the production form.
func DefaultSellFormLimits() SellFormLimits {
	return SellFormLimits{
		MinTitleLen:       5,
		MinDescriptionLen: 20,
		MaxStartingPrice:  1_000_000,
	}
}

// SellForm carries the auction-authoring fields that validate before
// submission. ReservePrice is nil when the field was left empty.
type SellForm struct {
	Title         string
	Description   string
	StartingPrice float64
	ReservePrice  *float64
	CategoryID    uint
	Condition     string
	DurationHours int
}

// ValidateSell checks the sell-form rules in form order.
func ValidateSell(f SellForm, limits SellFormLimits) error {
	if len(strings.TrimSpace(f.Title)) < limits.MinTitleLen {
		return models.NewValidationError("Title must be at least 5 characters long")
	}
	if len(strings.TrimSpace(f.Description)) < limits.MinDescriptionLen {
		return models.NewValidationError("Description must be at least 20 characters long")
	}
	if f.StartingPrice <= 0 {
		return models.NewValidationError("Starting price must be greater than 0")
	}
	if f.StartingPrice > limits.MaxStartingPrice {
		return models.NewValidationError("Starting price must be less than $1,000,000")
	}
	if f.ReservePrice != nil && *f.ReservePrice < f.StartingPrice {
		return models.NewValidationError("Reserve price must be greater than or equal to starting price")
	}
	if f.CategoryID == 0 {
		return models.NewValidationError("Please select a category")
	}
	if f.Condition == "" {
		return models.NewValidationError("Please select item condition")
	}
	if f.DurationHours <= 0 {
		return models.NewValidationError("Please select auction duration")
	}
	return nil
}
