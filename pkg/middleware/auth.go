package middleware

import (
	"context"
	"net/http"
	"strings"

	"rihla/pkg/logger"
	"rihla/pkg/token"

	"github.com/julienschmidt/httprouter"
)

const CallerIDKey contextKey = "caller_id"

// Authenticate verifies the Bearer token and puts the caller id in the
// request context. Handlers behind it read the identity with CallerID and
// trust it without re-validating credentials.
func Authenticate(issuer *token.Issuer, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				rejectUnauthorized(w, "missing bearer token")
				return
			}

			callerID, err := issuer.Verify(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				log.Warn("Token verification failed",
					"request_id", requestIDFrom(r.Context()),
					"path", r.URL.Path,
				)
				rejectUnauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), CallerIDKey, callerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth is the per-route form of Authenticate, for routers that mix
// public and protected endpoints.
func RequireAuth(issuer *token.Issuer, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				rejectUnauthorized(w, "missing bearer token")
				return
			}

			callerID, err := issuer.Verify(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				log.Warn("Token verification failed",
					"request_id", requestIDFrom(r.Context()),
					"path", r.URL.Path,
				)
				rejectUnauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), CallerIDKey, callerID)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// CallerID returns the authenticated caller id injected by Authenticate,
// or "" when the request was not authenticated.
func CallerID(ctx context.Context) string {
	if v := ctx.Value(CallerIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func rejectUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
