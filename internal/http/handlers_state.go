package http

import (
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/core"
	"github.com/fairuzulum/ZenFinance/internal/session"
)

type walletBalance struct {
	WalletID string     `json:"walletId"`
	Balance  core.Money `json:"balance"`
}

type stateResponse struct {
	session.State
	Balances []walletBalance `json:"balances"`
}

// handleState returns the five collections plus derived wallet balances.
// Balances are always recomputed from the transaction snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.controller.Snapshot()
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	balances := make([]walletBalance, 0, len(state.Wallets))
	for _, wal := range state.Wallets {
		balances = append(balances, walletBalance{
			WalletID: wal.ID,
			Balance:  core.WalletBalance(state.Transactions, wal.ID),
		})
	}

	writeJSON(w, http.StatusOK, stateResponse{State: state, Balances: balances})
}
