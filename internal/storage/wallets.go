package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (r *SQLiteRepository) ListWallets(ctx context.Context, userID string) ([]core.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, currency FROM wallets WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []core.Wallet
	for rows.Next() {
		var w core.Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &w.Currency); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (r *SQLiteRepository) GetWallet(ctx context.Context, userID, id string) (core.Wallet, error) {
	var w core.Wallet
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, currency FROM wallets WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan(&w.ID, &w.Name, &w.Type, &w.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Wallet{}, ErrNotFound
	}
	if err != nil {
		return core.Wallet{}, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

func (r *SQLiteRepository) InsertWallet(ctx context.Context, userID string, w core.Wallet) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wallets (id, user_id, name, type, currency) VALUES (?, ?, ?, ?, ?)`,
		id, userID, w.Name, w.Type, w.Currency,
	)
	if err != nil {
		return "", fmt.Errorf("insert wallet: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) DeleteWallet(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wallets WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
