// Package domain holds the core entities of the tracker. Amounts are kept
// as exact decimals end to end; only the JSON boundary renders them as
// numbers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
)

func init() {
	// Amounts serialize as JSON numbers; exactness is preserved because
	// the rendered text is the exact decimal representation. Both the
	// HTTP boundary and the store encode records through this.
	decimal.MarshalJSONWithoutQuotes = true
}

// Type classifies a transaction as money in or money out. The sign is
// carried here, never by the amount.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the two allowed values.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DateLayout is the calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// CategoryIncome is the single category used for income transactions.
const CategoryIncome = "Income"

// CategoryOther absorbs expense categories outside the closed set.
const CategoryOther = "Other"

// ExpenseCategories is the closed set of expense categories.
var ExpenseCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Entertainment",
	"Health",
	"Shopping",
	"Education",
	CategoryOther,
}

var expenseCategorySet = func() map[string]bool {
	set := make(map[string]bool, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		set[c] = true
	}
	return set
}()

// IsExpenseCategory reports whether name belongs to the closed set.
func IsExpenseCategory(name string) bool {
	return expenseCategorySet[name]
}

// NormalizeCategory applies the category rule for the given type: income
// always maps to CategoryIncome, and an expense category outside the
// closed set coerces to CategoryOther.
func NormalizeCategory(t Type, category string) string {
	if t == TypeIncome {
		return CategoryIncome
	}
	if !IsExpenseCategory(category) {
		return CategoryOther
	}
	return category
}

// Transaction is one income or expense record owned by a single user.
// TransactionID and CreatedAt are set once at creation and never change.
type Transaction struct {
	UserID        string          `json:"userId"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          Type            `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`      // YYYY-MM-DD, when it occurred
	CreatedAt     string          `json:"createdAt"` // RFC 3339 UTC, when it was recorded
}

// TransactionFields is the mutable subset of a transaction. Update may
// change these and nothing else.
type TransactionFields struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        string
}

// Validate checks the mutable fields: a valid type, a non-negative amount
// and a well-formed calendar date. The category is normalized in place
// per NormalizeCategory.
func (f *TransactionFields) Validate() error {
	if !f.Type.Valid() {
		return apperr.Validationf("invalid transaction type %q", f.Type)
	}
	if f.Amount.IsNegative() {
		return apperr.Validation("amount must be non-negative")
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return apperr.Validationf("invalid date %q, expected YYYY-MM-DD", f.Date)
	}
	f.Category = NormalizeCategory(f.Type, f.Category)
	return nil
}

// Apply copies the mutable fields onto tx.
func (f *TransactionFields) Apply(tx *Transaction) {
	tx.Amount = f.Amount
	tx.Type = f.Type
	tx.Category = f.Category
	tx.Description = f.Description
	tx.Date = f.Date
}
