// Package stats computes summary rollups over a user's transaction
// history. Compute is a pure function of the history and a reference
// time: no I/O, no shared state, safe to call concurrently.
package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

// MonthlyBucket is one month's income and expense totals.
type MonthlyBucket struct {
	Month    string  `json:"month"` // "Jan 2006"
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// DailyBucket is one day-of-month's expense total.
type DailyBucket struct {
	Day      int     `json:"day"`
	Expenses float64 `json:"expenses"`
}

// CategoryTotal is the expense total of one category this month.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary bundles the three rollup views returned by the stats endpoint.
type Summary struct {
	MonthlySummary  []MonthlyBucket `json:"monthlySummary"`
	DailySummary    []DailyBucket   `json:"dailySummary"`
	CategorySummary []CategoryTotal `json:"categorySummary"`
}

const monthKeyLayout = "2006-01"

type monthlyAcc struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// Compute folds the history into the three summary views. Accumulation is
// decimal-exact; totals convert to float64 only at the boundary. An empty
// history yields three empty sequences rather than zero-seeded skeletons.
func Compute(txs []*domain.Transaction, now time.Time) Summary {
	if len(txs) == 0 {
		return Summary{
			MonthlySummary:  []MonthlyBucket{},
			DailySummary:    []DailyBucket{},
			CategorySummary: []CategoryTotal{},
		}
	}

	return Summary{
		MonthlySummary:  monthlySummary(txs, now),
		DailySummary:    dailySummary(txs, now),
		CategorySummary: categorySummary(txs, now),
	}
}

// monthlySummary covers the 6 trailing month buckets. Bucket keys come
// from subtracting i*30 days from now, an approximation kept for
// behavioral compatibility: near month boundaries keys can drift, and
// duplicate keys collapse into one bucket.
func monthlySummary(txs []*domain.Transaction, now time.Time) []MonthlyBucket {
	buckets := make(map[string]*monthlyAcc)
	for i := 0; i < 6; i++ {
		key := now.AddDate(0, 0, -i*30).Format(monthKeyLayout)
		if _, ok := buckets[key]; !ok {
			buckets[key] = &monthlyAcc{}
		}
	}

	for _, t := range txs {
		if len(t.Date) < len(monthKeyLayout) {
			continue
		}
		acc, ok := buckets[t.Date[:len(monthKeyLayout)]]
		if !ok {
			continue
		}
		if t.Type == domain.TypeIncome {
			acc.income = acc.income.Add(t.Amount)
		} else {
			acc.expenses = acc.expenses.Add(t.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		label := k
		if month, err := time.Parse(monthKeyLayout, k); err == nil {
			label = month.Format("Jan 2006")
		}
		out = append(out, MonthlyBucket{
			Month:    label,
			Income:   buckets[k].income.InexactFloat64(),
			Expenses: buckets[k].expenses.InexactFloat64(),
		})
	}
	return out
}

// dailySummary covers every calendar day of the current month, zero-seeded
// so gaps are explicit. Only expenses count.
func dailySummary(txs []*domain.Transaction, now time.Time) []DailyBucket {
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()

	days := make([]decimal.Decimal, daysInMonth+1)
	monthPrefix := now.Format(monthKeyLayout)

	for _, t := range txs {
		if t.Type != domain.TypeExpense || len(t.Date) < 10 {
			continue
		}
		if t.Date[:len(monthPrefix)] != monthPrefix {
			continue
		}
		day, err := strconv.Atoi(t.Date[8:10])
		if err != nil || day < 1 || day > daysInMonth {
			continue
		}
		days[day] = days[day].Add(t.Amount)
	}

	out := make([]DailyBucket, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		out = append(out, DailyBucket{Day: day, Expenses: days[day].InexactFloat64()})
	}
	return out
}

// categorySummary totals this month's expenses per category. Unlike the
// other two views it is not pre-seeded: only categories that actually had
// expenses appear. Output is sorted by category name for stable responses.
func categorySummary(txs []*domain.Transaction, now time.Time) []CategoryTotal {
	monthPrefix := now.Format(monthKeyLayout)
	totals := make(map[string]decimal.Decimal)

	for _, t := range txs {
		if t.Type != domain.TypeExpense || len(t.Date) < len(monthPrefix) {
			continue
		}
		if t.Date[:len(monthPrefix)] != monthPrefix {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
