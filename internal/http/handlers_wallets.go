package http

import (
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}

	created, err := s.controller.AddWallet(r.Context(), core.Wallet{
		Name:     req.Name,
		Type:     core.WalletType(req.Type),
		Currency: req.Currency,
	})
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DeleteWallet(r.Context(), r.PathValue("id")); err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
