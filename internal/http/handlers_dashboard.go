package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

type budgetProgress struct {
	Budget core.Budget       `json:"budget"`
	Status core.BudgetStatus `json:"status"`
}

type debtProgress struct {
	Debt       core.Debt `json:"debt"`
	Percentage float64   `json:"percentage"`
}

type dashboardResponse struct {
	Totals    core.Totals           `json:"totals"`
	Daily     []core.DailyPoint     `json:"daily"`
	Breakdown []core.CategoryAmount `json:"breakdown"`
	Insight   string                `json:"insight"`
	Budgets   []budgetProgress      `json:"budgets"`
	Debts     []debtProgress        `json:"debts"`
}

// handleDashboard computes the aggregate view: headline totals, the
// trailing-seven-day series, expense breakdown by category, the top-spending
// insight, and budget/debt progress. Filter parameters narrow the
// transaction set for everything except budget progress, which always
// measures spending in the current calendar month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	key := s.dashboardCacheKey(r.URL.RawQuery)
	if resp, ok := s.dashCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	state, err := s.controller.Snapshot()
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	txs := state.Transactions
	if !filter.IsZero() {
		txs = filter.Apply(txs)
	}

	resp := dashboardResponse{
		Totals:    core.ComputeTotals(txs),
		Daily:     core.DailySeries(txs, time.Now()),
		Breakdown: core.CategoryBreakdown(txs),
		Insight:   core.TopSpendingInsight(txs),
	}

	month := core.CurrentMonth(time.Now())
	for _, b := range state.Budgets {
		resp.Budgets = append(resp.Budgets, budgetProgress{
			Budget: b,
			Status: core.BudgetProgress(state.Transactions, b.Category, month, b.Amount),
		})
	}
	for _, d := range state.Debts {
		resp.Debts = append(resp.Debts, debtProgress{
			Debt:       d,
			Percentage: core.DebtProgress(d),
		})
	}

	s.dashCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}
