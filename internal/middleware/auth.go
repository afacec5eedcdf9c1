package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fitizen/fitizen-go/internal/model"
)

type contextKey string

const sessionKey contextKey = "session"

// Verifier is the slice of the session manager the gate needs.
type Verifier interface {
	Verify(ctx context.Context, r *http.Request) (*model.Session, error)
}

// RequireSession returns middleware gating data access behind a
// verified established session. Verification completes before the
// wrapped handler runs; there is no speculative execution of gated
// reads. A setup-pending session does not pass the gate.
func RequireSession(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := v.Verify(r.Context(), r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			if session.Kind != model.SessionEstablished {
				writeJSONError(w, http.StatusUnauthorized, "profile setup incomplete")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the verified session from the request context.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*model.Session)
	return session, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
