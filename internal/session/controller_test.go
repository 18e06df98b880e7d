package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairuzulum/ZenFinance/internal/core"
	"github.com/fairuzulum/ZenFinance/internal/storage/memory"
)

const testUser = "owner@example.com"

type recordingPublisher struct {
	synced  []string
	deleted []string
}

func (p *recordingPublisher) PublishTransactionSync(_ context.Context, _, id string) error {
	p.synced = append(p.synced, id)
	return nil
}

func (p *recordingPublisher) PublishTransactionDelete(_ context.Context, _, id string) error {
	p.deleted = append(p.deleted, id)
	return nil
}

// failingStore wraps the memory store and fails every write.
type failingStore struct {
	*memory.Store
}

var errStore = errors.New("store down")

func (f failingStore) InsertTransaction(context.Context, string, core.Transaction) (string, error) {
	return "", errStore
}

func (f failingStore) RecordDebtPayment(context.Context, string, string, core.Money, bool, core.Transaction) (string, error) {
	return "", errStore
}

func loadedController(t *testing.T) (*Controller, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.New()
	pub := &recordingPublisher{}
	c := NewController(store, pub)
	c.now = func() time.Time { return time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC) }
	if err := c.Load(context.Background(), testUser); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c, store, pub
}

func addWallet(t *testing.T, c *Controller) core.Wallet {
	t.Helper()
	w, err := c.AddWallet(context.Background(), core.Wallet{Name: "Cash", Type: core.Cash, Currency: "IDR"})
	if err != nil {
		t.Fatalf("add wallet: %v", err)
	}
	return w
}

func TestControllerRequiresLoad(t *testing.T) {
	c := NewController(memory.New(), nil)
	if _, err := c.Snapshot(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	_, err := c.AddWallet(context.Background(), core.Wallet{Name: "X", Type: core.Cash, Currency: "IDR"})
	if !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestLoadPullsAllCollections(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	if _, err := store.InsertWallet(ctx, testUser, core.Wallet{Name: "Bank", Type: core.Bank, Currency: "IDR"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.InsertDebt(ctx, testUser, core.Debt{Title: "Loan", TotalAmount: core.Money{Cents: 100}}); err != nil {
		t.Fatal(err)
	}

	c := NewController(store, nil)
	if err := c.Load(ctx, testUser); err != nil {
		t.Fatalf("load: %v", err)
	}
	st, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Wallets) != 1 || len(st.Debts) != 1 {
		t.Fatalf("snapshot incomplete: %d wallets, %d debts", len(st.Wallets), len(st.Debts))
	}
}

func TestLoadOrdersTransactionsByDateThenTime(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	seed := []core.Transaction{
		{WalletID: "w", Type: core.Expense, Amount: core.Money{Cents: 1}, Category: "Food", Date: "2024-01-02", Time: "08:00"},
		{WalletID: "w", Type: core.Expense, Amount: core.Money{Cents: 1}, Category: "Food", Date: "2024-01-02", Time: "22:00"},
		{WalletID: "w", Type: core.Expense, Amount: core.Money{Cents: 1}, Category: "Food", Date: "2024-01-03", Time: "01:00"},
	}
	for _, tx := range seed {
		if _, err := store.InsertTransaction(ctx, testUser, tx); err != nil {
			t.Fatal(err)
		}
	}

	c := NewController(store, nil)
	if err := c.Load(ctx, testUser); err != nil {
		t.Fatalf("load: %v", err)
	}
	st, _ := c.Snapshot()
	wantDates := []string{"2024-01-03", "2024-01-02", "2024-01-02"}
	wantTimes := []string{"01:00", "22:00", "08:00"}
	for i := range wantDates {
		if st.Transactions[i].Date != wantDates[i] || st.Transactions[i].Time != wantTimes[i] {
			t.Fatalf("position %d: got %s %s, want %s %s",
				i, st.Transactions[i].Date, st.Transactions[i].Time, wantDates[i], wantTimes[i])
		}
	}
}

func TestAddTransactionKeepsOrderAndPublishes(t *testing.T) {
	c, _, pub := loadedController(t)
	w := addWallet(t, c)

	first, err := c.AddTransaction(context.Background(), core.Transaction{
		WalletID: w.ID, Type: core.Income, Amount: core.Money{Cents: 200000},
		Category: "Salary", Date: "2024-03-01", Time: "09:00", CreatedAt: 1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	later, err := c.AddTransaction(context.Background(), core.Transaction{
		WalletID: w.ID, Type: core.Expense, Amount: core.Money{Cents: 50000},
		Category: "Food", Date: "2024-03-02", Time: "12:00", CreatedAt: 2,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	st, _ := c.Snapshot()
	if st.Transactions[0].ID != later.ID || st.Transactions[1].ID != first.ID {
		t.Fatalf("transactions out of order: %v", st.Transactions)
	}
	if len(pub.synced) != 2 {
		t.Fatalf("expected 2 sync publishes, got %d", len(pub.synced))
	}
}

func TestAddTransactionValidates(t *testing.T) {
	c, _, _ := loadedController(t)
	_, err := c.AddTransaction(context.Background(), core.Transaction{
		WalletID: "w", Type: core.Expense, Amount: core.Money{Cents: 1},
		Category: "Salary", Date: "2024-03-01", Time: "09:00",
	})
	if !errors.Is(err, core.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	store := memory.New()
	c := NewController(failingStore{store}, nil)
	if err := c.Load(context.Background(), testUser); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := c.Version()

	_, err := c.AddTransaction(context.Background(), core.Transaction{
		WalletID: "w", Type: core.Expense, Amount: core.Money{Cents: 1},
		Category: "Food", Date: "2024-03-01", Time: "09:00",
	})
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}

	st, _ := c.Snapshot()
	if len(st.Transactions) != 0 {
		t.Fatalf("failed write must not touch memory, got %d transactions", len(st.Transactions))
	}
	if c.Version() != before {
		t.Fatalf("version must not change on failed write")
	}
}

func TestDeleteTransaction(t *testing.T) {
	c, _, pub := loadedController(t)
	w := addWallet(t, c)
	tx, err := c.AddTransaction(context.Background(), core.Transaction{
		WalletID: w.ID, Type: core.Expense, Amount: core.Money{Cents: 100},
		Category: "Food", Date: "2024-03-01", Time: "09:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	st, _ := c.Snapshot()
	if len(st.Transactions) != 0 {
		t.Fatalf("transaction should be gone")
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != tx.ID {
		t.Fatalf("expected delete publish for %s, got %v", tx.ID, pub.deleted)
	}
}

func TestPayDebt(t *testing.T) {
	c, _, _ := loadedController(t)
	w := addWallet(t, c)
	debt, err := c.AddDebt(context.Background(), core.Debt{
		Title: "Pinjam Budi", TotalAmount: core.Money{Cents: 500000},
	})
	if err != nil {
		t.Fatal(err)
	}

	paid, tx, err := c.PayDebt(context.Background(), debt.ID, core.Money{Cents: 500000}, w.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaidAmount.Cents != 500000 || !paid.IsPaid {
		t.Fatalf("debt not settled: %+v", paid)
	}
	if tx.Type != core.Expense || tx.Category != core.DebtPaymentCategory || tx.Amount.Cents != 500000 {
		t.Fatalf("payment transaction wrong: %+v", tx)
	}
	if tx.Note != "Paid debt: Pinjam Budi" {
		t.Fatalf("note = %q", tx.Note)
	}
	if tx.Date != "2024-03-15" || tx.Time != "14:30" {
		t.Fatalf("payment should be dated now, got %s %s", tx.Date, tx.Time)
	}

	st, _ := c.Snapshot()
	if len(st.Transactions) != 1 {
		t.Fatalf("expected the payment expense in state, got %d", len(st.Transactions))
	}
	if st.Debts[0].PaidAmount.Cents != 500000 || !st.Debts[0].IsPaid {
		t.Fatalf("state debt not updated: %+v", st.Debts[0])
	}
}

func TestPayDebtPartial(t *testing.T) {
	c, _, _ := loadedController(t)
	w := addWallet(t, c)
	debt, _ := c.AddDebt(context.Background(), core.Debt{
		Title: "Kartu Kredit", TotalAmount: core.Money{Cents: 500000},
	})

	paid, _, err := c.PayDebt(context.Background(), debt.ID, core.Money{Cents: 200000}, w.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaidAmount.Cents != 200000 || paid.IsPaid {
		t.Fatalf("partial payment should not settle: %+v", paid)
	}
}

func TestPayDebtFailureChangesNothing(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	debtID, err := store.InsertDebt(ctx, testUser, core.Debt{Title: "Loan", TotalAmount: core.Money{Cents: 100000}})
	if err != nil {
		t.Fatal(err)
	}

	c := NewController(failingStore{store}, nil)
	if err := c.Load(ctx, testUser); err != nil {
		t.Fatal(err)
	}

	_, _, err = c.PayDebt(ctx, debtID, core.Money{Cents: 50000}, "w1")
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	st, _ := c.Snapshot()
	if st.Debts[0].PaidAmount.Cents != 0 || st.Debts[0].IsPaid {
		t.Fatalf("failed payment must not change the debt: %+v", st.Debts[0])
	}
	if len(st.Transactions) != 0 {
		t.Fatalf("failed payment must not create a transaction")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _, _ := loadedController(t)
	addWallet(t, c)
	st, _ := c.Snapshot()
	st.Wallets[0].Name = "mutated"

	again, _ := c.Snapshot()
	if again.Wallets[0].Name != "Cash" {
		t.Fatalf("snapshot mutation leaked into controller state")
	}
}

func TestResetClearsState(t *testing.T) {
	c, _, _ := loadedController(t)
	addWallet(t, c)
	c.Reset()
	if c.Loaded() {
		t.Fatalf("controller should be unloaded after reset")
	}
	if _, err := c.Snapshot(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded after reset, got %v", err)
	}
}
