package http

import (
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	target, err := parseMoney(req.TargetAmount)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	created, err := s.controller.AddGoal(r.Context(), core.SavingsGoal{
		Name:         req.Name,
		TargetAmount: target,
		Deadline:     req.Deadline,
	})
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateGoalAmount replaces the manually tracked saved amount. Zero is
// allowed so progress can be reset.
func (s *Server) handleUpdateGoalAmount(w http.ResponseWriter, r *http.Request) {
	var req goalAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	var current core.Money
	if req.CurrentAmount != "" {
		cents, err := core.ParseDecimalToCentsAllowZero(req.CurrentAmount)
		if err != nil {
			writeMappedError(r.Context(), w, err)
			return
		}
		current = core.Money{Cents: cents}
	}

	if err := s.controller.UpdateGoalAmount(r.Context(), r.PathValue("id"), current); err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
