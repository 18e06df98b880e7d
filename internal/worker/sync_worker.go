// Package worker mirrors transaction mutations into the Google Sheets backup
// ledger, driven by messages from the sync queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fairuzulum/ZenFinance/internal/amqp"
	"github.com/fairuzulum/ZenFinance/internal/core"
	"github.com/fairuzulum/ZenFinance/internal/export"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
	"github.com/fairuzulum/ZenFinance/internal/sheets"
	"github.com/fairuzulum/ZenFinance/internal/storage"
)

// Store is the slice of the repository the worker reads from.
type Store interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	GetWallet(ctx context.Context, userID, id string) (core.Wallet, error)
}

// SyncWorker applies ledger messages to the backup spreadsheet.
type SyncWorker struct {
	storage Store
	writer  sheets.LedgerWriter
	deleter sheets.LedgerDeleter
}

func NewSyncWorker(storage Store, writer sheets.LedgerWriter, deleter sheets.LedgerDeleter) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		writer:  writer,
		deleter: deleter,
	}
}

// HandleMessage dispatches on the message kind. Unknown kinds are dropped
// rather than requeued so a bad producer cannot wedge the queue.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.LedgerMessage) error {
	switch msg.Kind {
	case amqp.KindSync:
		return w.handleSync(ctx, msg)
	case amqp.KindDelete:
		return w.handleDelete(ctx, msg)
	default:
		slog.WarnContext(ctx, "Dropping message with unknown kind",
			applog.FieldKind, msg.Kind,
			applog.FieldTransactionID, msg.TransactionID)
		return nil
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, msg *amqp.LedgerMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		applog.FieldTransactionID, msg.TransactionID)

	tx, err := w.storage.GetTransaction(ctx, msg.UserID, msg.TransactionID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before the sync caught up. The delete message will follow.
		slog.WarnContext(ctx, "Transaction no longer exists, skipping sync",
			applog.FieldTransactionID, msg.TransactionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	walletName := export.UnknownWallet
	wallet, err := w.storage.GetWallet(ctx, msg.UserID, tx.WalletID)
	if err == nil {
		walletName = wallet.Name
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("get wallet from storage: %w", err)
	}

	rowRef, err := w.writer.Append(ctx, tx, walletName)
	if err != nil {
		return fmt.Errorf("append transaction to ledger: %w", err)
	}

	slog.InfoContext(ctx, "Synced transaction to ledger",
		applog.FieldTransactionID, tx.ID,
		applog.FieldRowRef, rowRef)

	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.LedgerMessage) error {
	slog.InfoContext(ctx, "Processing delete message",
		applog.FieldTransactionID, msg.TransactionID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No ledger deleter configured, skipping deletion",
			applog.FieldTransactionID, msg.TransactionID)
		return nil
	}

	if err := w.deleter.Delete(ctx, msg.TransactionID); err != nil {
		return fmt.Errorf("delete transaction from ledger: %w", err)
	}

	slog.InfoContext(ctx, "Deleted transaction from ledger",
		applog.FieldTransactionID, msg.TransactionID)

	return nil
}
