package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// NearLimitThreshold is the budget consumption percentage above which the
// near-limit warning shows.
const NearLimitThreshold = 80.0

type (
	// Totals are the headline dashboard numbers over a transaction set.
	Totals struct {
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
		Balance Money `json:"balance"`
	}

	// DailyPoint is one day of the trailing-seven-day chart.
	DailyPoint struct {
		Label   string `json:"label"` // e.g. "02 Jan"
		Income  Money  `json:"income"`
		Expense Money  `json:"expense"`
	}

	// CategoryAmount is an expense total aggregated by category name.
	CategoryAmount struct {
		Category string `json:"category"`
		Total    Money  `json:"total"`
	}

	// BudgetStatus is the consumption of one monthly budget.
	BudgetStatus struct {
		Spent      Money   `json:"spent"`
		Percentage float64 `json:"percentage"` // clamped to [0,100]
		NearLimit  bool    `json:"nearLimit"`
	}
)

// NoDataInsight is returned when there are no expense transactions to rank.
const NoDataInsight = "No data yet."

// ComputeTotals sums income and expense over whatever collection is passed
// in; balance is income minus expense.
func ComputeTotals(txs []Transaction) Totals {
	var income, expense int64
	for _, t := range txs {
		if t.Type == Income {
			income += t.Amount.Cents
		} else {
			expense += t.Amount.Cents
		}
	}
	return Totals{
		Income:  Money{Cents: income},
		Expense: Money{Cents: expense},
		Balance: Money{Cents: income - expense},
	}
}

// DailySeries buckets transactions into the seven calendar days ending at
// today (inclusive), oldest first. Bucketing is by exact date match.
func DailySeries(txs []Transaction, today time.Time) []DailyPoint {
	points := make([]DailyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		dateStr := d.Format(DateLayout)
		var inc, exp int64
		for _, t := range txs {
			if t.Date != dateStr {
				continue
			}
			if t.Type == Income {
				inc += t.Amount.Cents
			} else {
				exp += t.Amount.Cents
			}
		}
		points = append(points, DailyPoint{
			Label:   d.Format("02 Jan"),
			Income:  Money{Cents: inc},
			Expense: Money{Cents: exp},
		})
	}
	return points
}

// CategoryBreakdown groups expense transactions by category and sums each
// group. Categories appear in first-seen order of the input.
func CategoryBreakdown(txs []Transaction) []CategoryAmount {
	totals := make(map[string]int64)
	var order []string
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryAmount{Category: c, Total: Money{Cents: totals[c]}})
	}
	return out
}

// TopSpendingInsight names the category with the largest summed expense and
// its share of total expense, rounded to the nearest integer. Ties break by
// category name ascending so the sentence is deterministic.
func TopSpendingInsight(txs []Transaction) string {
	breakdown := CategoryBreakdown(txs)
	if len(breakdown) == 0 {
		return NoDataInsight
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Total.Cents != breakdown[j].Total.Cents {
			return breakdown[i].Total.Cents > breakdown[j].Total.Cents
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	top := breakdown[0]
	totalExp := ComputeTotals(txs).Expense.Cents
	if totalExp == 0 {
		totalExp = 1
	}
	pct := int(math.Round(float64(top.Total.Cents) / float64(totalExp) * 100))
	return fmt.Sprintf("You spent %d%% of your money on %s this period.", pct, top.Category)
}

// BudgetProgress sums expense transactions in the given category whose date
// falls inside month (YYYY-MM, matched by string prefix) and computes the
// consumption percentage against limit, clamped to 100 so overspending never
// reads above full.
func BudgetProgress(txs []Transaction, category, month string, limit Money) BudgetStatus {
	var spent int64
	for _, t := range txs {
		if t.Type == Expense && t.Category == category && strings.HasPrefix(t.Date, month) {
			spent += t.Amount.Cents
		}
	}
	return BudgetStatus{
		Spent:      Money{Cents: spent},
		Percentage: clampedPercent(spent, limit.Cents),
		NearLimit:  clampedPercent(spent, limit.Cents) > NearLimitThreshold,
	}
}

// DebtProgress is the payoff percentage of a debt, clamped to [0,100].
func DebtProgress(d Debt) float64 {
	return clampedPercent(d.PaidAmount.Cents, d.TotalAmount.Cents)
}

// WalletBalance derives a wallet balance from the full transaction set:
// income counts positive, expense negative. A wallet with no transactions
// balances to zero. Cost is O(len(txs)) per call; balances are never cached.
func WalletBalance(txs []Transaction, walletID string) Money {
	var sum int64
	for _, t := range txs {
		if t.WalletID != walletID {
			continue
		}
		if t.Type == Income {
			sum += t.Amount.Cents
		} else {
			sum -= t.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// CurrentMonth returns the YYYY-MM key for t.
func CurrentMonth(t time.Time) string {
	return t.Format("2006-01")
}

func clampedPercent(part, whole int64) float64 {
	if whole <= 0 {
		if part > 0 {
			return 100
		}
		return 0
	}
	pct := float64(part) / float64(whole) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
