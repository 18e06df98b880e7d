package core

import (
	"reflect"
	"testing"
)

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "t1", WalletID: "w1", Type: Expense, Amount: Money{Cents: 50000}, Category: "Food", Note: "warung lunch", Date: "2024-01-01", Time: "12:30"},
		{ID: "t2", WalletID: "w1", Type: Income, Amount: Money{Cents: 200000}, Category: "Salary", Note: "january payroll", Date: "2024-01-01", Time: "09:00"},
		{ID: "t3", WalletID: "w2", Type: Expense, Amount: Money{Cents: 15000}, Category: "Transport", Note: "bus", Date: "2024-01-03", Time: "07:45"},
		{ID: "t4", WalletID: "w2", Type: Expense, Amount: Money{Cents: 120000}, Category: "Shopping", Note: "shoes, on sale", Date: "2024-02-10", Time: "19:00"},
	}
}

func ids(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func cents(v int64) *int64 { return &v }

func TestFilterApply(t *testing.T) {
	txs := sampleTransactions()

	cases := []struct {
		name string
		f    Filter
		want []string
	}{
		{"empty filter keeps everything", Filter{}, []string{"t1", "t2", "t3", "t4"}},
		{"type income", Filter{Type: "income"}, []string{"t2"}},
		{"type all is a wildcard", Filter{Type: TypeAll}, []string{"t1", "t2", "t3", "t4"}},
		{"date range inclusive", Filter{StartDate: "2024-01-01", EndDate: "2024-01-03"}, []string{"t1", "t2", "t3"}},
		{"start date only", Filter{StartDate: "2024-01-02"}, []string{"t3", "t4"}},
		{"time of day range crosses dates", Filter{StartTime: "09:00", EndTime: "13:00"}, []string{"t1", "t2"}},
		{"amount range", Filter{MinAmount: cents(20000), MaxAmount: cents(150000)}, []string{"t1", "t4"}},
		{"category set", Filter{Categories: []string{"Food", "Transport"}}, []string{"t1", "t3"}},
		{"search matches note", Filter{Search: "PAYROLL"}, []string{"t2"}},
		{"search matches category", Filter{Search: "shop"}, []string{"t4"}},
		{"predicates AND together", Filter{Type: "expense", StartDate: "2024-01-01", EndDate: "2024-01-31"}, []string{"t1", "t3"}},
		{"no match", Filter{Search: "helicopter"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(tc.f.Apply(txs))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	txs := sampleTransactions()
	filters := []Filter{
		{},
		{Type: "expense"},
		{StartDate: "2024-01-01", EndDate: "2024-01-31", Search: "lunch"},
		{MinAmount: cents(10000), Categories: []string{"Food", "Salary"}},
	}
	for i, f := range filters {
		once := f.Apply(txs)
		twice := f.Apply(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("filter %d not idempotent: %v != %v", i, ids(once), ids(twice))
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	txs := sampleTransactions()
	// Reverse input; output must follow the reversed order.
	rev := make([]Transaction, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		rev = append(rev, txs[i])
	}
	got := ids(Filter{Type: "expense"}.Apply(rev))
	want := []string{"t4", "t3", "t1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	before := ids(txs)
	Filter{Type: "income"}.Apply(txs)
	if !reflect.DeepEqual(ids(txs), before) {
		t.Fatalf("input slice mutated")
	}
}
