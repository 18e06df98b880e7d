package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fairuzulum/ZenFinance/internal/core"
	"github.com/fairuzulum/ZenFinance/internal/export"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
)

// handleListTransactions returns the filtered transaction list, newest
// first. With no filter parameters the full list comes back unchanged.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
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
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	t := core.Transaction{
		WalletID:  req.WalletID,
		Type:      core.TransactionType(req.Type),
		Amount:    amount,
		Category:  req.Category,
		Note:      req.Note,
		Date:      req.Date,
		Time:      req.Time,
		CreatedAt: time.Now().UnixMilli(),
	}

	created, err := s.controller.AddTransaction(r.Context(), t)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportTransactions streams the filtered list as a CSV download.
func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
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

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format(core.DateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, txs, state.Wallets); err != nil {
		// Headers are already out, so the failure can only be logged.
		slog.ErrorContext(r.Context(), "CSV export failed", applog.FieldError, err)
	}
}
