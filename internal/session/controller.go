// Package session owns the authenticated user's in-memory collections and
// every mutation path over them. All collection state lives in one explicit
// struct behind one controller; views read immutable snapshots and derive
// everything else with the pure functions in core.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairuzulum/ZenFinance/internal/core"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
	"github.com/fairuzulum/ZenFinance/internal/storage"
)

var ErrNotLoaded = errors.New("session not loaded")

// State is an immutable snapshot of the five collections.
type State struct {
	Transactions []core.Transaction `json:"transactions"`
	Wallets      []core.Wallet      `json:"wallets"`
	Goals        []core.SavingsGoal `json:"goals"`
	Budgets      []core.Budget      `json:"budgets"`
	Debts        []core.Debt        `json:"debts"`
}

// Controller orchestrates the initial parallel load and write-through
// mutations: the store is written first, memory only updates once the store
// call succeeded, so a failed write leaves prior state untouched.
type Controller struct {
	store     Store
	publisher Publisher // optional
	now       func() time.Time

	mu      sync.RWMutex
	userID  string
	loaded  bool
	version int64

	transactions []core.Transaction
	wallets      []core.Wallet
	goals        []core.SavingsGoal
	budgets      []core.Budget
	debts        []core.Debt
}

func NewController(store Store, publisher Publisher) *Controller {
	return &Controller{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Load fetches the five collections concurrently and replaces the in-memory
// state, proceeding only once all fetches succeed. Any failure leaves the
// controller unloaded.
func (c *Controller) Load(ctx context.Context, userID string) error {
	var (
		txs     []core.Transaction
		wallets []core.Wallet
		goals   []core.SavingsGoal
		budgets []core.Budget
		debts   []core.Debt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = c.store.ListTransactions(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		wallets, err = c.store.ListWallets(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = c.store.ListGoals(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = c.store.ListBudgets(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		debts, err = c.store.ListDebts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load collections: %w", err)
	}

	// The store only orders by date; finish the ordering here.
	core.SortTransactionsDesc(txs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.loaded = true
	c.version++
	c.transactions = txs
	c.wallets = wallets
	c.goals = goals
	c.budgets = budgets
	c.debts = debts

	slog.InfoContext(ctx, "Session loaded",
		applog.FieldUserID, userID,
		applog.FieldTxCount, len(txs),
		"wallet_count", len(wallets),
		"goal_count", len(goals),
		"budget_count", len(budgets),
		"debt_count", len(debts))

	return nil
}

// Reset drops all in-memory state (logout).
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = ""
	c.loaded = false
	c.version++
	c.transactions = nil
	c.wallets = nil
	c.goals = nil
	c.budgets = nil
	c.debts = nil
}

// Loaded reports whether a user's collections are in memory.
func (c *Controller) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Version increments on every state change; the HTTP layer keys its
// dashboard cache on it.
func (c *Controller) Version() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Snapshot returns a copy of the current state. Callers may keep and filter
// it freely; derived values are always recomputed from a snapshot.
func (c *Controller) Snapshot() (State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return State{}, ErrNotLoaded
	}
	return State{
		Transactions: append([]core.Transaction(nil), c.transactions...),
		Wallets:      append([]core.Wallet(nil), c.wallets...),
		Goals:        append([]core.SavingsGoal(nil), c.goals...),
		Budgets:      append([]core.Budget(nil), c.budgets...),
		Debts:        append([]core.Debt(nil), c.debts...),
	}, nil
}

func (c *Controller) requireLoaded() (string, error) {
	if !c.loaded {
		return "", ErrNotLoaded
	}
	return c.userID, nil
}

// AddTransaction validates and persists a transaction, then splices it into
// the in-memory collection keeping date/time descending order.
func (c *Controller) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.Transaction{}, err
	}

	id, err := c.store.InsertTransaction(ctx, userID, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	t.ID = id

	c.transactions = append([]core.Transaction{t}, c.transactions...)
	core.SortTransactionsDesc(c.transactions)
	c.version++

	c.publishSync(ctx, userID, id)
	return t, nil
}

// DeleteTransaction permanently removes a transaction.
func (c *Controller) DeleteTransaction(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return err
	}

	if err := c.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	kept := c.transactions[:0]
	for _, t := range c.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.transactions = kept
	c.version++

	if c.publisher != nil {
		if err := c.publisher.PublishTransactionDelete(ctx, userID, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message",
				applog.FieldTransactionID, id, applog.FieldError, err)
		}
	}
	return nil
}

func (c *Controller) AddWallet(ctx context.Context, w core.Wallet) (core.Wallet, error) {
	if err := w.Validate(); err != nil {
		return core.Wallet{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.Wallet{}, err
	}

	id, err := c.store.InsertWallet(ctx, userID, w)
	if err != nil {
		return core.Wallet{}, fmt.Errorf("add wallet: %w", err)
	}
	w.ID = id
	c.wallets = append(c.wallets, w)
	c.version++
	return w, nil
}

func (c *Controller) DeleteWallet(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return err
	}

	if err := c.store.DeleteWallet(ctx, userID, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	kept := c.wallets[:0]
	for _, w := range c.wallets {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	c.wallets = kept
	c.version++
	return nil
}

func (c *Controller) AddGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.SavingsGoal{}, err
	}

	id, err := c.store.InsertGoal(ctx, userID, g)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("add goal: %w", err)
	}
	g.ID = id
	c.goals = append(c.goals, g)
	c.version++
	return g, nil
}

// UpdateGoalAmount replaces the manually tracked saved amount.
func (c *Controller) UpdateGoalAmount(ctx context.Context, id string, current core.Money) error {
	if current.Cents < 0 {
		return core.ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return err
	}

	if err := c.store.UpdateGoalAmount(ctx, userID, id, current); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	for i := range c.goals {
		if c.goals[i].ID == id {
			c.goals[i].CurrentAmount = current
			break
		}
	}
	c.version++
	return nil
}

func (c *Controller) DeleteGoal(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return err
	}

	if err := c.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	kept := c.goals[:0]
	for _, g := range c.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	c.goals = kept
	c.version++
	return nil
}

func (c *Controller) AddBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.Budget{}, err
	}

	id, err := c.store.InsertBudget(ctx, userID, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("add budget: %w", err)
	}
	b.ID = id
	c.budgets = append(c.budgets, b)
	c.version++
	return b, nil
}

func (c *Controller) DeleteBudget(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return err
	}

	if err := c.store.DeleteBudget(ctx, userID, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	kept := c.budgets[:0]
	for _, b := range c.budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.budgets = kept
	c.version++
	return nil
}

func (c *Controller) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.Debt{}, err
	}

	id, err := c.store.InsertDebt(ctx, userID, d)
	if err != nil {
		return core.Debt{}, fmt.Errorf("add debt: %w", err)
	}
	d.ID = id
	c.debts = append(c.debts, d)
	c.version++
	return d, nil
}

// PayDebt applies a payment: the debt's paid amount grows by amount, the
// paid flag flips once paid >= total, and a matching "Debt Payment" expense
// dated now is recorded against the chosen wallet. Store-side the two writes
// commit atomically; memory is only touched after the commit, so a failure
// changes nothing locally.
func (c *Controller) PayDebt(ctx context.Context, debtID string, amount core.Money, walletID string) (core.Debt, core.Transaction, error) {
	if err := amount.Validate(); err != nil {
		return core.Debt{}, core.Transaction{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	userID, err := c.requireLoaded()
	if err != nil {
		return core.Debt{}, core.Transaction{}, err
	}

	var debt *core.Debt
	for i := range c.debts {
		if c.debts[i].ID == debtID {
			debt = &c.debts[i]
			break
		}
	}
	if debt == nil {
		return core.Debt{}, core.Transaction{}, fmt.Errorf("pay debt %s: %w", debtID, storage.ErrNotFound)
	}

	newPaid := core.Money{Cents: debt.PaidAmount.Cents + amount.Cents}
	isPaid := newPaid.Cents >= debt.TotalAmount.Cents

	now := c.now()
	expense := core.Transaction{
		WalletID:  walletID,
		Type:      core.Expense,
		Amount:    amount,
		Category:  core.DebtPaymentCategory,
		Note:      "Paid debt: " + debt.Title,
		Date:      now.Format(core.DateLayout),
		Time:      now.Format(core.TimeLayout),
		CreatedAt: now.UnixMilli(),
	}
	if err := expense.Validate(); err != nil {
		return core.Debt{}, core.Transaction{}, err
	}

	txID, err := c.store.RecordDebtPayment(ctx, userID, debtID, newPaid, isPaid, expense)
	if err != nil {
		return core.Debt{}, core.Transaction{}, fmt.Errorf("pay debt: %w", err)
	}
	expense.ID = txID

	debt.PaidAmount = newPaid
	debt.IsPaid = isPaid
	c.transactions = append([]core.Transaction{expense}, c.transactions...)
	core.SortTransactionsDesc(c.transactions)
	c.version++

	c.publishSync(ctx, userID, txID)

	slog.InfoContext(ctx, "Debt payment applied",
		"debt_id", debtID,
		applog.FieldTransactionID, txID,
		"amount_cents", amount.Cents,
		"is_paid", isPaid)

	return *debt, expense, nil
}

func (c *Controller) publishSync(ctx context.Context, userID, transactionID string) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishTransactionSync(ctx, userID, transactionID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			applog.FieldTransactionID, transactionID, applog.FieldError, err)
	}
}
