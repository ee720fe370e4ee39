package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpggio/folio/internal/domain/editor"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type sessionKey struct{}

// SessionResolver resolves an editing session from a bearer token.
type SessionResolver interface {
	Get(id string) (*editor.Session, error)
}

// SessionFromContext returns the editing session from context, if present.
func SessionFromContext(ctx context.Context) (*editor.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*editor.Session)
	return sess, ok
}

// AuthMiddleware requires a bearer token naming an open editing session.
func AuthMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", "Log in with the editor PIN")
				return
			}

			sess, err := resolver.Get(token)
			if err != nil || sess == nil {
				writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token", "Log in with the editor PIN")
				return
			}
			if sess.Status() != editor.StatusOpen {
				writeAPIError(w, http.StatusUnauthorized, "SESSION_CLOSED", "session is closed", "Log in again to open a new session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
