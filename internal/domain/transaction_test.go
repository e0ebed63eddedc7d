package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		category string
		want     string
	}{
		{"income always Income", TypeIncome, "Salary", CategoryIncome},
		{"income with empty category", TypeIncome, "", CategoryIncome},
		{"known expense category kept", TypeExpense, "Food", "Food"},
		{"unknown expense coerced to Other", TypeExpense, "Groceries", CategoryOther},
		{"empty expense coerced to Other", TypeExpense, "", CategoryOther},
		{"case sensitive set", TypeExpense, "food", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.typ, tt.category); got != tt.want {
				t.Errorf("NormalizeCategory(%v, %q) = %q, want %q", tt.typ, tt.category, got, tt.want)
			}
		})
	}
}

func TestTransactionFieldsValidate(t *testing.T) {
	valid := func() TransactionFields {
		return TransactionFields{
			Amount:      decimal.NewFromInt(15000),
			Type:        TypeExpense,
			Category:    "Food",
			Description: "Beli Kopi",
			Date:        "2026-09-01",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*TransactionFields)
		wantErr bool
	}{
		{"valid expense", func(f *TransactionFields) {}, false},
		{"valid income", func(f *TransactionFields) { f.Type = TypeIncome }, false},
		{"zero amount allowed", func(f *TransactionFields) { f.Amount = decimal.Zero }, false},
		{"negative amount", func(f *TransactionFields) { f.Amount = decimal.NewFromInt(-1) }, true},
		{"bad type", func(f *TransactionFields) { f.Type = "transfer" }, true},
		{"empty type", func(f *TransactionFields) { f.Type = "" }, true},
		{"bad date", func(f *TransactionFields) { f.Date = "01-09-2026" }, true},
		{"empty date", func(f *TransactionFields) { f.Date = "" }, true},
		{"not a calendar date", func(f *TransactionFields) { f.Date = "2026-02-30" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			err := f.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("Validate() kind = %v, want KindValidation", apperr.KindOf(err))
			}
		})
	}
}

func TestValidateNormalizesCategory(t *testing.T) {
	f := TransactionFields{
		Amount:   decimal.NewFromInt(5000),
		Type:     TypeExpense,
		Category: "Coffee Shops",
		Date:     "2026-09-01",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if f.Category != CategoryOther {
		t.Errorf("category = %q, want %q", f.Category, CategoryOther)
	}

	f = TransactionFields{
		Amount:   decimal.NewFromInt(5000000),
		Type:     TypeIncome,
		Category: "whatever",
		Date:     "2026-09-01",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if f.Category != CategoryIncome {
		t.Errorf("category = %q, want %q", f.Category, CategoryIncome)
	}
}

func TestApplyLeavesIdentityAlone(t *testing.T) {
	tx := Transaction{
		UserID:        "user-a",
		TransactionID: "tx-1",
		CreatedAt:     "2026-09-01T10:00:00Z",
	}
	f := TransactionFields{
		Amount:      decimal.NewFromInt(10000),
		Type:        TypeExpense,
		Category:    "Transport",
		Description: "Gojek",
		Date:        "2026-08-31",
	}
	f.Apply(&tx)

	if tx.UserID != "user-a" || tx.TransactionID != "tx-1" || tx.CreatedAt != "2026-09-01T10:00:00Z" {
		t.Errorf("Apply() touched immutable fields: %+v", tx)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(10000)) || tx.Category != "Transport" || tx.Date != "2026-08-31" {
		t.Errorf("Apply() did not copy mutable fields: %+v", tx)
	}
}
