// Package memory is an in-memory document store with the same surface as
// the SQLite repository. It backs tests and local development without a
// database file.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fairuzulum/ZenFinance/internal/core"
	"github.com/fairuzulum/ZenFinance/internal/storage"
)

// ErrNotFound matches the SQLite repository's sentinel so callers handle
// both stores the same way.
var ErrNotFound = storage.ErrNotFound

type Store struct {
	mu     sync.Mutex
	nextID int

	wallets      map[string][]core.Wallet
	transactions map[string][]core.Transaction
	goals        map[string][]core.SavingsGoal
	budgets      map[string][]core.Budget
	debts        map[string][]core.Debt
}

func New() *Store {
	return &Store{
		wallets:      map[string][]core.Wallet{},
		transactions: map[string][]core.Transaction{},
		goals:        map[string][]core.SavingsGoal{},
		budgets:      map[string][]core.Budget{},
		debts:        map[string][]core.Debt{},
	}
}

func (s *Store) genID() string {
	s.nextID++
	return fmt.Sprintf("mem:%d", s.nextID)
}

func (s *Store) ListWallets(_ context.Context, userID string) ([]core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Wallet(nil), s.wallets[userID]...), nil
}

func (s *Store) GetWallet(_ context.Context, userID, id string) (core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets[userID] {
		if w.ID == id {
			return w, nil
		}
	}
	return core.Wallet{}, ErrNotFound
}

func (s *Store) InsertWallet(_ context.Context, userID string, w core.Wallet) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.genID()
	s.wallets[userID] = append(s.wallets[userID], w)
	return w.ID, nil
}

func (s *Store) DeleteWallet(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.wallets[userID][:0]
	found := false
	for _, w := range s.wallets[userID] {
		if w.ID == id {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return ErrNotFound
	}
	s.wallets[userID] = kept
	return nil
}

// ListTransactions mirrors the SQLite repository: ordered by date descending
// only, leaving time ordering to the caller.
func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.transactions[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions[userID] {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

func (s *Store) InsertTransaction(_ context.Context, userID string, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.genID()
	s.transactions[userID] = append(s.transactions[userID], t)
	return t.ID, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.transactions[userID][:0]
	found := false
	for _, t := range s.transactions[userID] {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrNotFound
	}
	s.transactions[userID] = kept
	return nil
}

func (s *Store) ListGoals(_ context.Context, userID string) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals[userID]...), nil
}

func (s *Store) InsertGoal(_ context.Context, userID string, g core.SavingsGoal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.genID()
	s.goals[userID] = append(s.goals[userID], g)
	return g.ID, nil
}

func (s *Store) UpdateGoalAmount(_ context.Context, userID, id string, current core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals[userID] {
		if s.goals[userID][i].ID == id {
			s.goals[userID][i].CurrentAmount = current
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.goals[userID][:0]
	found := false
	for _, g := range s.goals[userID] {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return ErrNotFound
	}
	s.goals[userID] = kept
	return nil
}

func (s *Store) ListBudgets(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets[userID]...), nil
}

func (s *Store) InsertBudget(_ context.Context, userID string, b core.Budget) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.genID()
	s.budgets[userID] = append(s.budgets[userID], b)
	return b.ID, nil
}

func (s *Store) DeleteBudget(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.budgets[userID][:0]
	found := false
	for _, b := range s.budgets[userID] {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return ErrNotFound
	}
	s.budgets[userID] = kept
	return nil
}

func (s *Store) ListDebts(_ context.Context, userID string) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Debt(nil), s.debts[userID]...), nil
}

func (s *Store) InsertDebt(_ context.Context, userID string, d core.Debt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.genID()
	s.debts[userID] = append(s.debts[userID], d)
	return d.ID, nil
}

// RecordDebtPayment applies both writes under the store lock so the memory
// store matches the SQLite repository's all-or-nothing behavior.
func (s *Store) RecordDebtPayment(_ context.Context, userID, debtID string, paid core.Money, isPaid bool, expense core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.debts[userID] {
		if s.debts[userID][i].ID == debtID {
			s.debts[userID][i].PaidAmount = paid
			s.debts[userID][i].IsPaid = isPaid
			expense.ID = s.genID()
			s.transactions[userID] = append(s.transactions[userID], expense)
			return expense.ID, nil
		}
	}
	return "", ErrNotFound
}
