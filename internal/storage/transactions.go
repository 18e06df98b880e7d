package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fairuzulum/ZenFinance/internal/core"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
)

// ErrNotFound is returned when a document id does not exist in the caller's
// namespace.
var ErrNotFound = errors.New("not found")

// ListTransactions returns the user's transactions ordered by date
// descending. Secondary time ordering is deliberately left to the caller.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, wallet_id, type, amount_cents, category, note, date, time, created_at
		 FROM transactions WHERE user_id = ? ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount.Cents, &t.Category, &t.Note, &t.Date, &t.Time, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetTransaction loads a single transaction by id within the user namespace.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	var t core.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, wallet_id, type, amount_cents, category, note, date, time, created_at
		 FROM transactions WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount.Cents, &t.Category, &t.Note, &t.Date, &t.Time, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// InsertTransaction stores a new transaction and returns the generated id.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, userID string, t core.Transaction) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, wallet_id, type, amount_cents, category, note, date, time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, t.WalletID, t.Type, t.Amount.Cents, t.Category, t.Note, t.Date, t.Time, t.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		applog.FieldTransactionID, id,
		"wallet_id", t.WalletID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category,
		"date", t.Date)

	return id, nil
}

// DeleteTransaction permanently removes a transaction. Deletion is not
// recoverable.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
