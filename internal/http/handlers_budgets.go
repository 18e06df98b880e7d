package http

import (
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	created, err := s.controller.AddBudget(r.Context(), core.Budget{
		Category: req.Category,
		Amount:   amount,
		Month:    req.Month,
	})
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DeleteBudget(r.Context(), r.PathValue("id")); err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
