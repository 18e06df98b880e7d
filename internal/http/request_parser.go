package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

// parseFilter builds a core.Filter from query parameters. Every parameter is
// optional; present ones are validated so the filter engine can rely on the
// ISO forms.
func parseFilter(q url.Values) (core.Filter, error) {
	var f core.Filter

	f.StartDate = strings.TrimSpace(q.Get("start_date"))
	if f.StartDate != "" && !core.ValidDate(f.StartDate) {
		return core.Filter{}, fmt.Errorf("start_date: %w", core.ErrInvalidDate)
	}
	f.EndDate = strings.TrimSpace(q.Get("end_date"))
	if f.EndDate != "" && !core.ValidDate(f.EndDate) {
		return core.Filter{}, fmt.Errorf("end_date: %w", core.ErrInvalidDate)
	}
	f.StartTime = strings.TrimSpace(q.Get("start_time"))
	if f.StartTime != "" && !core.ValidTime(f.StartTime) {
		return core.Filter{}, fmt.Errorf("start_time: %w", core.ErrInvalidTime)
	}
	f.EndTime = strings.TrimSpace(q.Get("end_time"))
	if f.EndTime != "" && !core.ValidTime(f.EndTime) {
		return core.Filter{}, fmt.Errorf("end_time: %w", core.ErrInvalidTime)
	}

	if v := strings.TrimSpace(q.Get("min_amount")); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil || cents < 0 {
			return core.Filter{}, fmt.Errorf("min_amount: %w", core.ErrInvalidAmount)
		}
		f.MinAmount = &cents
	}
	if v := strings.TrimSpace(q.Get("max_amount")); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil || cents < 0 {
			return core.Filter{}, fmt.Errorf("max_amount: %w", core.ErrInvalidAmount)
		}
		f.MaxAmount = &cents
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		if v != core.TypeAll && !core.TransactionType(v).Valid() {
			return core.Filter{}, fmt.Errorf("type %q: %w", v, core.ErrInvalidType)
		}
		f.Type = v
	}

	for _, c := range q["category"] {
		if c = strings.TrimSpace(c); c != "" {
			f.Categories = append(f.Categories, c)
		}
	}

	f.Search = strings.TrimSpace(q.Get("q"))

	return f, nil
}

// Request bodies. Amounts arrive as decimal strings and are parsed with the
// same half-up rule as manual entry.

type transactionRequest struct {
	WalletID string `json:"walletId"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type walletRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

type goalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	Deadline     string `json:"deadline"`
}

type goalAmountRequest struct {
	CurrentAmount string `json:"currentAmount"`
}

type budgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
}

type debtRequest struct {
	Title       string `json:"title"`
	TotalAmount string `json:"totalAmount"`
	DueDate     string `json:"dueDate"`
}

type payDebtRequest struct {
	Amount   string `json:"amount"`
	WalletID string `json:"walletId"`
}

func parseMoney(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}
