package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fairuzulum/ZenFinance/internal/auth"
	"github.com/fairuzulum/ZenFinance/internal/core"
	applog "github.com/fairuzulum/ZenFinance/internal/log"
	"github.com/fairuzulum/ZenFinance/internal/session"
	"github.com/fairuzulum/ZenFinance/internal/storage"
)

// User-facing error categories. Fetch failures map to one of the three
// fetch categories; mutations collapse to generic.
const (
	categoryAuth       = "authentication-denied"
	categoryAccess     = "access-denied"
	categoryPermission = "permission-denied"
	categoryIndex      = "missing-index"
	categoryNotFound   = "not-found"
	categoryValidation = "validation"
	categoryGeneric    = "generic"
)

type errorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, category, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Category: category})
}

// writeMappedError translates domain errors into the response taxonomy.
func writeMappedError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, categoryAuth, "authentication failed")
	case errors.Is(err, auth.ErrAccessDenied):
		writeError(w, http.StatusForbidden, categoryAccess, err.Error())
	case errors.Is(err, session.ErrNotLoaded):
		writeError(w, http.StatusUnauthorized, categoryAuth, "no active session")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, categoryNotFound, "not found")
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, categoryValidation, err.Error())
	default:
		slog.ErrorContext(ctx, "Request failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, categoryGeneric, "something went wrong, try again")
	}
}

// writeFetchError is the taxonomy for read paths: permission and index
// failures keep their category so the client can show a specific message.
func writeFetchError(ctx context.Context, w http.ResponseWriter, err error) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission"):
		writeError(w, http.StatusForbidden, categoryPermission, "permission denied by the data store")
	case strings.Contains(msg, "index") || strings.Contains(msg, "failed precondition"):
		writeError(w, http.StatusInternalServerError, categoryIndex, "the data store needs an index for this query")
	default:
		writeMappedError(ctx, w, err)
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount, core.ErrInvalidType, core.ErrInvalidCategory,
		core.ErrInvalidDate, core.ErrInvalidTime, core.ErrEmptyWallet,
		core.ErrEmptyName, core.ErrInvalidMonth, core.ErrInvalidWallet,
		core.ErrEmptyCurrency, core.ErrNoteTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// bearerToken pulls the session token out of the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// requireAuth rejects requests without a live session token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, categoryAuth, "missing bearer token")
			return
		}
		if _, ok := s.sessions.Lookup(token); !ok {
			writeError(w, http.StatusUnauthorized, categoryAuth, "invalid or expired session")
			return
		}
		next(w, r)
	}
}
