package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Cash    WalletType = "cash"
	Bank    WalletType = "bank"
	EWallet WalletType = "e-wallet"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type (
	TransactionType string

	WalletType string

	Money struct {
		Cents int64
	}

	// Transaction is a single dated income or expense event attributed to
	// one wallet and one category. Dates and times are kept as ISO strings
	// because the whole filtering layer compares them lexicographically.
	Transaction struct {
		ID        string          `json:"id"`
		WalletID  string          `json:"walletId"`
		Type      TransactionType `json:"type"`
		Amount    Money           `json:"amount"`
		Category  string          `json:"category"`
		Note      string          `json:"note"`
		Date      string          `json:"date"` // YYYY-MM-DD
		Time      string          `json:"time"` // HH:mm
		CreatedAt int64           `json:"createdAt"`
	}

	// Wallet is a named money-holding bucket. Balance is never stored; it is
	// always derived by summing signed transaction amounts (see summary.go).
	Wallet struct {
		ID       string     `json:"id"`
		Name     string     `json:"name"`
		Type     WalletType `json:"type"`
		Currency string     `json:"currency"`
	}

	Budget struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
		Month    string `json:"month"` // YYYY-MM
	}

	SavingsGoal struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
		Deadline      string `json:"deadline,omitempty"`
	}

	Debt struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		TotalAmount Money  `json:"totalAmount"`
		PaidAmount  Money  `json:"paidAmount"`
		DueDate     string `json:"dueDate,omitempty"`
		IsPaid      bool   `json:"isPaid"`
	}
)

// Fixed category taxonomy per transaction type.
var (
	IncomeCategories  = []string{"Salary", "Freelance", "Investments", "Gift", "Other"}
	ExpenseCategories = []string{"Food", "Transport", "Housing", "Entertainment", "Health", "Education", "Shopping", "Utilities", "Debt Payment", "Other"}
)

// DebtPaymentCategory tags expense transactions created by debt payments.
const DebtPaymentCategory = "Debt Payment"

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrEmptyWallet     = errors.New("empty wallet reference")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidWallet   = errors.New("invalid wallet type")
	ErrEmptyCurrency   = errors.New("empty currency code")
	ErrNoteTooLong     = errors.New("note too long (max 500 characters)")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (w WalletType) Valid() bool {
	return w == Cash || w == Bank || w == EWallet
}

// CategoriesFor returns the fixed category list for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether category belongs to the enumeration for t.
func ValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// ValidDate checks the YYYY-MM-DD form. Lexicographic comparison elsewhere
// relies on every stored date passing this check.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime checks the HH:mm form.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// ValidMonth checks the YYYY-MM form used by budgets.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !ValidCategory(t.Type, t.Category) {
		return ErrInvalidCategory
	}
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	if !ValidTime(t.Time) {
		return ErrInvalidTime
	}
	if strings.TrimSpace(t.WalletID) == "" {
		return ErrEmptyWallet
	}
	if len(t.Note) > 500 {
		return ErrNoteTooLong
	}
	return nil
}

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if !w.Type.Valid() {
		return ErrInvalidWallet
	}
	if strings.TrimSpace(w.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}

func (b Budget) Validate() error {
	if !ValidCategory(Expense, b.Category) {
		return ErrInvalidCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !ValidMonth(b.Month) {
		return ErrInvalidMonth
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.Deadline != "" && !ValidDate(g.Deadline) {
		return ErrInvalidDate
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyName
	}
	if err := d.TotalAmount.Validate(); err != nil {
		return err
	}
	if d.PaidAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if d.DueDate != "" && !ValidDate(d.DueDate) {
		return ErrInvalidDate
	}
	return nil
}

// SortTransactionsDesc orders transactions by date descending, then time
// descending within the same day. The store only orders by date; this is the
// secondary ordering applied after retrieval.
func SortTransactionsDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].Time > txs[j].Time
	})
}
