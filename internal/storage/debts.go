package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fairuzulum/ZenFinance/internal/core"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
)

func (r *SQLiteRepository) ListDebts(ctx context.Context, userID string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, total_cents, paid_cents, due_date, is_paid FROM debts WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		var d core.Debt
		if err := rows.Scan(&d.ID, &d.Title, &d.TotalAmount.Cents, &d.PaidAmount.Cents, &d.DueDate, &d.IsPaid); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *SQLiteRepository) InsertDebt(ctx context.Context, userID string, d core.Debt) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, user_id, title, total_cents, paid_cents, due_date, is_paid)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, d.Title, d.TotalAmount.Cents, d.PaidAmount.Cents, d.DueDate, d.IsPaid,
	)
	if err != nil {
		return "", fmt.Errorf("insert debt: %w", err)
	}
	return id, nil
}

// RecordDebtPayment applies a payment in one transaction: the debt's paid
// amount and flag are updated and the matching expense transaction is
// inserted, committing together or not at all. Returns the new transaction
// id.
func (r *SQLiteRepository) RecordDebtPayment(ctx context.Context, userID, debtID string, paid core.Money, isPaid bool, expense core.Transaction) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin debt payment: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE debts SET paid_cents = ?, is_paid = ? WHERE user_id = ? AND id = ?`,
		paid.Cents, isPaid, userID, debtID,
	)
	if err != nil {
		return "", fmt.Errorf("update debt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", ErrNotFound
	}

	txID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, wallet_id, type, amount_cents, category, note, date, time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txID, userID, expense.WalletID, expense.Type, expense.Amount.Cents, expense.Category,
		expense.Note, expense.Date, expense.Time, expense.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert payment transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit debt payment: %w", err)
	}

	slog.InfoContext(ctx, "Debt payment recorded",
		"debt_id", debtID,
		applog.FieldTransactionID, txID,
		"paid_cents", paid.Cents,
		"is_paid", isPaid)

	return txID, nil
}
