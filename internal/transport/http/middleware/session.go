package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"workhub/internal/domain/directory"
	"workhub/internal/session"
	"workhub/internal/transport/http/api"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyToken
)

// Session resolves the cookie token against the session store and puts the
// session identity on the request context. Each hit slides the idle timeout.
func Session(store session.Store, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			data, ok, err := store.Get(r.Context(), token)
			if err != nil {
				slog.Warn("session lookup failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Touch(r.Context(), token); err != nil {
				slog.Warn("session touch failed", "err", err)
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, data)
			ctx = context.WithValue(ctx, ctxKeyToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (session.Data, bool) {
	user, ok := ctx.Value(ctxKeyUser).(session.Data)
	return user, ok && user.UserID != ""
}

func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(ctxKeyToken).(string); ok {
		return token
	}
	return ""
}

// RequireAuth rejects requests without a valid session. Authorization
// failures of every kind map to 401 here; the API has no 403 class.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok || user.Role != directory.RoleAdmin {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "admin role required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
