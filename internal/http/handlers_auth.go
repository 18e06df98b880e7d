package http

import (
	"log/slog"
	"net/http"

	"github.com/fairuzulum/ZenFinance/internal/auth"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
)

type loginRequest struct {
	IDToken string `json:"idToken"`
}

type loginResponse struct {
	Token    string        `json:"token"`
	Identity auth.Identity `json:"identity"`
}

// handleLogin verifies the Google ID token, enforces the allowed-email gate,
// loads the user's collections, and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, categoryValidation, "invalid request body")
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, categoryValidation, "idToken is required")
		return
	}

	identity, err := s.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeMappedError(r.Context(), w, err)
		return
	}

	if err := s.gate.Check(identity); err != nil {
		slog.WarnContext(r.Context(), "Sign-in rejected", applog.FieldEmail, identity.Email)
		writeMappedError(r.Context(), w, err)
		return
	}

	if err := s.controller.Load(r.Context(), identity.Email); err != nil {
		writeFetchError(r.Context(), w, err)
		return
	}

	token := s.sessions.Create(identity)

	slog.InfoContext(r.Context(), "User signed in", applog.FieldEmail, identity.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Identity: identity})
}

// handleLogout revokes the session token and drops in-memory state.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Revoke(bearerToken(r))
	s.controller.Reset()
	slog.InfoContext(r.Context(), "User signed out")
	w.WriteHeader(http.StatusNoContent)
}
