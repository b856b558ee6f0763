package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"posbridge-server/internal/infra/httpserver"
)

// AgentMiddleware authenticates trusted agents with a bearer JWT.
func AgentMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseJWT(httpserver.GetBearerToken(r), secret)
			if err != nil {
				slog.Warn("agent authentication failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()))
				httpserver.ReplyWithError(w, http.StatusUnauthorized, "invalid agent credential")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// SharedSecretMiddleware guards platform webhooks that authenticate with a
// static bearer secret.
func SharedSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !MatchSecret(httpserver.GetBearerToken(r), secret) {
				slog.Warn("webhook authentication failed", slog.String("path", r.URL.Path))
				httpserver.ReplyWithError(w, http.StatusUnauthorized, "invalid webhook credential")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func MatchSecret(given, expected string) bool {
	if given == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
