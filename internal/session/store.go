package session

import (
	"context"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

// Store is the document-store surface the controller needs: list, insert
// (returning a generated id), field updates and deletes, all scoped to one
// user's namespace. *storage.SQLiteRepository implements it; tests use the
// in-memory implementation.
type Store interface {
	ListWallets(ctx context.Context, userID string) ([]core.Wallet, error)
	InsertWallet(ctx context.Context, userID string, w core.Wallet) (string, error)
	DeleteWallet(ctx context.Context, userID, id string) error

	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	InsertTransaction(ctx context.Context, userID string, t core.Transaction) (string, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error)
	InsertGoal(ctx context.Context, userID string, g core.SavingsGoal) (string, error)
	UpdateGoalAmount(ctx context.Context, userID, id string, current core.Money) error
	DeleteGoal(ctx context.Context, userID, id string) error

	ListBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	InsertBudget(ctx context.Context, userID string, b core.Budget) (string, error)
	DeleteBudget(ctx context.Context, userID, id string) error

	ListDebts(ctx context.Context, userID string) ([]core.Debt, error)
	InsertDebt(ctx context.Context, userID string, d core.Debt) (string, error)
	RecordDebtPayment(ctx context.Context, userID, debtID string, paid core.Money, isPaid bool, expense core.Transaction) (string, error)
}

// Publisher mirrors recorded transactions onto the backup sync queue.
// Publishing is best effort; the controller never fails a mutation over it.
type Publisher interface {
	PublishTransactionSync(ctx context.Context, userID, transactionID string) error
	PublishTransactionDelete(ctx context.Context, userID, transactionID string) error
}
