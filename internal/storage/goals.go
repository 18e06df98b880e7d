package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, current_cents, deadline FROM goals WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		var g core.SavingsGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &g.Deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, userID string, g core.SavingsGoal) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, name, target_cents, current_cents, deadline)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Deadline,
	)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}
	return id, nil
}

// UpdateGoalAmount sets the manually tracked saved amount of a goal.
func (r *SQLiteRepository) UpdateGoalAmount(ctx context.Context, userID, id string, current core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET current_cents = ? WHERE user_id = ? AND id = ?`,
		current.Cents, userID, id,
	)
	if err != nil {
		return fmt.Errorf("update goal amount: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
