package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type contextKey string

// UserIDKey holds the authenticated voter ID in the request context.
const UserIDKey contextKey = "user_id"

const accessTokenCookie = "access_token"

// RequireVoter rejects requests without a valid access token. The token is
// read from the access_token cookie, then from an Authorization bearer header.
func RequireVoter(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(verifier, func(ports.Caller) bool { return true })
}

// RequireOfficial is RequireVoter restricted to tokens carrying the official
// role. Other callers get 401.
func RequireOfficial(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(verifier, func(c ports.Caller) bool { return c.Role == domain.RoleOfficial })
}

func authenticate(verifier ports.TokenVerifier, allowed func(ports.Caller) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				http.Error(w, "Unauthorized: missing access token", http.StatusUnauthorized)
				return
			}

			caller, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.InfoContext(r.Context(), "rejected access token", "error", err)
				http.Error(w, "Unauthorized: invalid access token", http.StatusUnauthorized)
				return
			}
			if !allowed(caller) {
				slog.InfoContext(r.Context(), "caller lacks role", "voter_id", caller.VoterID, "role", caller.Role)
				http.Error(w, "Unauthorized: officials only", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, caller.VoterID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func voterFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
