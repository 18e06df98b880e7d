package http

import (
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	total, err := parseMoney(req.TotalAmount)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	created, err := s.controller.AddDebt(r.Context(), core.Debt{
		Title:       req.Title,
		TotalAmount: total,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type payDebtResponse struct {
	Debt        core.Debt        `json:"debt"`
	Transaction core.Transaction `json:"transaction"`
}

// handlePayDebt applies a payment against a debt. The debt update and the
// matching expense commit together; the response carries both.
func (s *Server) handlePayDebt(w http.ResponseWriter, r *http.Request) {
	var req payDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	debt, tx, err := s.controller.PayDebt(r.Context(), r.PathValue("id"), amount, req.WalletID)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, payDebtResponse{Debt: debt, Transaction: tx})
}
