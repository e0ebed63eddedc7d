package domain

import (
	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
)

// Asset is a point-in-time holding owned by a user, e.g. Cash, Bank,
// Investment or Property. Unlike transactions, assets carry an updatedAt
// timestamp because they represent current state, not events.
type Asset struct {
	UserID      string          `json:"userId"`
	AssetID     string          `json:"assetId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	UpdatedAt   string          `json:"updatedAt"` // RFC 3339 UTC
}

// Validate checks the user-supplied asset fields.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return apperr.Validation("asset name is required")
	}
	if a.Category == "" {
		return apperr.Validation("asset category is required")
	}
	if a.Amount.IsNegative() {
		return apperr.Validation("amount must be non-negative")
	}
	return nil
}
