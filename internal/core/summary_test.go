package core

import (
	"strings"
	"testing"
	"time"
)

func TestComputeTotals(t *testing.T) {
	txs := []Transaction{
		{Date: "2024-01-01", Type: Expense, Amount: Money{Cents: 50000}, Category: "Food"},
		{Date: "2024-01-01", Type: Income, Amount: Money{Cents: 200000}, Category: "Salary"},
	}
	got := ComputeTotals(txs)
	if got.Income.Cents != 200000 || got.Expense.Cents != 50000 || got.Balance.Cents != 150000 {
		t.Fatalf("got %+v, want income=200000 expense=50000 balance=150000", got)
	}

	empty := ComputeTotals(nil)
	if empty.Income.Cents != 0 || empty.Expense.Cents != 0 || empty.Balance.Cents != 0 {
		t.Fatalf("empty set should total zero, got %+v", empty)
	}
}

func TestDailySeries(t *testing.T) {
	today := time.Date(2024, 1, 7, 15, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{Date: "2024-01-01", Type: Expense, Amount: Money{Cents: 100}}, // oldest bucket
		{Date: "2024-01-07", Type: Income, Amount: Money{Cents: 300}},  // today
		{Date: "2024-01-07", Type: Expense, Amount: Money{Cents: 50}},
		{Date: "2023-12-31", Type: Expense, Amount: Money{Cents: 999}}, // outside window
	}
	points := DailySeries(txs, today)
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].Label != "01 Jan" || points[0].Expense.Cents != 100 {
		t.Fatalf("oldest point wrong: %+v", points[0])
	}
	if points[6].Label != "07 Jan" || points[6].Income.Cents != 300 || points[6].Expense.Cents != 50 {
		t.Fatalf("today point wrong: %+v", points[6])
	}
	for i := 1; i < 6; i++ {
		if points[i].Income.Cents != 0 || points[i].Expense.Cents != 0 {
			t.Fatalf("point %d should be empty: %+v", i, points[i])
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []Transaction{
		{Type: Expense, Amount: Money{Cents: 100}, Category: "Food"},
		{Type: Income, Amount: Money{Cents: 900}, Category: "Salary"}, // ignored
		{Type: Expense, Amount: Money{Cents: 200}, Category: "Transport"},
		{Type: Expense, Amount: Money{Cents: 50}, Category: "Food"},
	}
	got := CategoryBreakdown(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != "Food" || got[0].Total.Cents != 150 {
		t.Fatalf("first category wrong: %+v", got[0])
	}
	if got[1].Category != "Transport" || got[1].Total.Cents != 200 {
		t.Fatalf("second category wrong: %+v", got[1])
	}
}

func TestTopSpendingInsight(t *testing.T) {
	if got := TopSpendingInsight(nil); got != NoDataInsight {
		t.Fatalf("expected no-data message, got %q", got)
	}

	txs := []Transaction{
		{Type: Expense, Amount: Money{Cents: 75000}, Category: "Food"},
		{Type: Expense, Amount: Money{Cents: 25000}, Category: "Transport"},
	}
	got := TopSpendingInsight(txs)
	want := "You spent 75% of your money on Food this period."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTopSpendingInsightTieBreak(t *testing.T) {
	// Equal totals resolve by category name ascending.
	txs := []Transaction{
		{Type: Expense, Amount: Money{Cents: 500}, Category: "Transport"},
		{Type: Expense, Amount: Money{Cents: 500}, Category: "Food"},
	}
	got := TopSpendingInsight(txs)
	if !strings.Contains(got, "on Food ") {
		t.Fatalf("tie should resolve to Food, got %q", got)
	}
}

func TestBudgetProgress(t *testing.T) {
	txs := []Transaction{
		{Type: Expense, Amount: Money{Cents: 70000}, Category: "Food", Date: "2024-01-05"},
		{Type: Expense, Amount: Money{Cents: 50000}, Category: "Food", Date: "2024-01-20"},
		{Type: Expense, Amount: Money{Cents: 30000}, Category: "Food", Date: "2023-12-20"},    // other month
		{Type: Expense, Amount: Money{Cents: 40000}, Category: "Transport", Date: "2024-01-05"}, // other category
		{Type: Income, Amount: Money{Cents: 90000}, Category: "Salary", Date: "2024-01-05"},
	}

	st := BudgetProgress(txs, "Food", "2024-01", Money{Cents: 100000})
	if st.Spent.Cents != 120000 {
		t.Fatalf("spent = %d, want 120000", st.Spent.Cents)
	}
	if st.Percentage != 100 {
		t.Fatalf("overspend must clamp to 100, got %v", st.Percentage)
	}
	if !st.NearLimit {
		t.Fatalf("expected near-limit warning")
	}

	under := BudgetProgress(txs, "Transport", "2024-01", Money{Cents: 100000})
	if under.Percentage != 40 || under.NearLimit {
		t.Fatalf("got %+v, want 40%% and no warning", under)
	}

	none := BudgetProgress(txs, "Health", "2024-01", Money{Cents: 100000})
	if none.Spent.Cents != 0 || none.Percentage != 0 {
		t.Fatalf("untouched budget should be zero, got %+v", none)
	}
}

func TestDebtProgress(t *testing.T) {
	cases := []struct {
		d    Debt
		want float64
	}{
		{Debt{TotalAmount: Money{Cents: 500000}, PaidAmount: Money{Cents: 0}}, 0},
		{Debt{TotalAmount: Money{Cents: 500000}, PaidAmount: Money{Cents: 250000}}, 50},
		{Debt{TotalAmount: Money{Cents: 500000}, PaidAmount: Money{Cents: 500000}}, 100},
		{Debt{TotalAmount: Money{Cents: 500000}, PaidAmount: Money{Cents: 750000}}, 100}, // clamped
	}
	for i, tc := range cases {
		if got := DebtProgress(tc.d); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestWalletBalance(t *testing.T) {
	txs := []Transaction{
		{WalletID: "w1", Type: Income, Amount: Money{Cents: 200000}},
		{WalletID: "w1", Type: Expense, Amount: Money{Cents: 50000}},
		{WalletID: "w2", Type: Expense, Amount: Money{Cents: 10000}},
	}
	if got := WalletBalance(txs, "w1"); got.Cents != 150000 {
		t.Fatalf("w1 balance = %d, want 150000", got.Cents)
	}
	if got := WalletBalance(txs, "w2"); got.Cents != -10000 {
		t.Fatalf("w2 balance = %d, want -10000", got.Cents)
	}
	if got := WalletBalance(txs, "empty"); got.Cents != 0 {
		t.Fatalf("wallet with no transactions must balance to 0, got %d", got.Cents)
	}
}
