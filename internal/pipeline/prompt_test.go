package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

func TestBuildPromptDeterministic(t *testing.T) {
	today := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	a := BuildPrompt("Beli Kopi 15 ribu", today)
	b := BuildPrompt("Beli Kopi 15 ribu", today)
	if a != b {
		t.Error("BuildPrompt is not deterministic for fixed input and date")
	}
}

func TestBuildPromptContents(t *testing.T) {
	today := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	prompt := BuildPrompt("Bayar listrik 200k kemarin", today)

	wantFragments := []string{
		"Indonesian Rupiah (IDR)",
		`User text: "Bayar listrik 200k kemarin"`,
		"'income' or 'expense'",
		"10k = 10000",
		"2jt = 2000000",
		"use today's date: 2026-09-01",
		"ONLY the JSON object",
		"{amount, type, category, description, date}",
		`"Beli Kopi 15 ribu"`,
		`"Gaji 5jt"`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(prompt, frag) {
			t.Errorf("prompt is missing %q", frag)
		}
	}

	// Every expense category must be offered to the model.
	for _, c := range domain.ExpenseCategories {
		if !strings.Contains(prompt, c) {
			t.Errorf("prompt is missing category %q", c)
		}
	}

	// Worked examples carry the injected date, not the wall clock.
	if strings.Count(prompt, "2026-09-01") < 3 {
		t.Error("worked examples should use the injected date")
	}
}
