package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/leavedesk/leave"
)

type contextKey string

const actorKey contextKey = "auth.actor"

// ActorFromContext returns the actor attached by Middleware. The second
// return is false on requests that never passed through it.
func ActorFromContext(ctx context.Context) (leave.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(leave.Actor)
	return actor, ok
}

// WithActor attaches an actor to the context. Exported for handler
// tests that bypass the middleware.
func WithActor(ctx context.Context, actor leave.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Middleware authenticates the Bearer token and stores the resulting
// actor in the request context. Requests without a valid token get 401.
func Middleware(tm *TokenManager, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			actor, err := tm.Verify(tokenString)
			if err != nil {
				log.WithError(err).Debug("token rejected")
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin rejects non-admin actors with 403. Must run after
// Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.Admin {
			http.Error(w, "administrator access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
