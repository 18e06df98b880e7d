package worker

import (
	"context"
	"testing"

	"github.com/fairuzulum/ZenFinance/internal/amqp"
	"github.com/fairuzulum/ZenFinance/internal/core"
	sheetmem "github.com/fairuzulum/ZenFinance/internal/sheets/memory"
	storemem "github.com/fairuzulum/ZenFinance/internal/storage/memory"
)

const userID = "owner@example.com"

func seedTransaction(t *testing.T, store *storemem.Store) (string, core.Transaction) {
	t.Helper()
	ctx := context.Background()
	walletID, err := store.InsertWallet(ctx, userID, core.Wallet{Name: "Main", Type: core.Bank, Currency: "IDR"})
	if err != nil {
		t.Fatalf("insert wallet: %v", err)
	}
	tx := core.Transaction{
		WalletID: walletID,
		Type:     core.Expense,
		Amount:   core.Money{Cents: 50050},
		Category: "Food",
		Note:     "lunch",
		Date:     "2025-03-02",
		Time:     "12:30",
	}
	id, err := store.InsertTransaction(ctx, userID, tx)
	if err != nil {
		t.Fatalf("insert transaction: %v", err)
	}
	tx.ID = id
	return id, tx
}

func TestHandleSyncAppendsRow(t *testing.T) {
	store := storemem.New()
	ledger := sheetmem.New()
	w := NewSyncWorker(store, ledger, ledger)

	id, tx := seedTransaction(t, store)

	if err := w.HandleMessage(context.Background(), amqp.NewSyncMessage(userID, id)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	rows := ledger.Rows()
	if len(rows) != 1 {
		t.Fatalf("ledger has %d rows, want 1", len(rows))
	}
	if rows[0].Transaction.ID != tx.ID || rows[0].WalletName != "Main" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestHandleSyncMissingTransactionIsSkipped(t *testing.T) {
	store := storemem.New()
	ledger := sheetmem.New()
	w := NewSyncWorker(store, ledger, ledger)

	if err := w.HandleMessage(context.Background(), amqp.NewSyncMessage(userID, "gone")); err != nil {
		t.Fatalf("missing transaction should not error, got %v", err)
	}
	if len(ledger.Rows()) != 0 {
		t.Fatalf("ledger should be empty")
	}
}

func TestHandleSyncMissingWalletFallsBack(t *testing.T) {
	store := storemem.New()
	ledger := sheetmem.New()
	w := NewSyncWorker(store, ledger, ledger)

	tx := core.Transaction{
		WalletID: "deleted-wallet",
		Type:     core.Income,
		Amount:   core.Money{Cents: 1000},
		Category: "Gift",
		Date:     "2025-03-02",
		Time:     "09:00",
	}
	id, err := store.InsertTransaction(context.Background(), userID, tx)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := w.HandleMessage(context.Background(), amqp.NewSyncMessage(userID, id)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	rows := ledger.Rows()
	if len(rows) != 1 || rows[0].WalletName != "Unknown" {
		t.Fatalf("rows = %+v, want one row with Unknown wallet", rows)
	}
}

func TestHandleDeleteRemovesRow(t *testing.T) {
	store := storemem.New()
	ledger := sheetmem.New()
	w := NewSyncWorker(store, ledger, ledger)

	id, _ := seedTransaction(t, store)
	if err := w.HandleMessage(context.Background(), amqp.NewSyncMessage(userID, id)); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := w.HandleMessage(context.Background(), amqp.NewDeleteMessage(userID, id)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ledger.Rows()) != 0 {
		t.Fatalf("ledger rows remain after delete")
	}
}

func TestHandleUnknownKindDropped(t *testing.T) {
	store := storemem.New()
	ledger := sheetmem.New()
	w := NewSyncWorker(store, ledger, ledger)

	msg := &amqp.LedgerMessage{Kind: "bogus", UserID: userID, TransactionID: "x"}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown kind should be dropped silently, got %v", err)
	}
}
