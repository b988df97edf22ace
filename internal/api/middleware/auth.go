package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hugh/orgroster/internal/api/respond"
	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/auth"
)

type contextKey string

const (
	UserIDKey         contextKey = "user_id"
	OrganisationIDKey contextKey = "organisation_id"
)

var ErrTokenMissing = apperr.Unauthorized("Authentication required")

// CredentialVerifier resolves a bearer token to the identity it was issued for.
type CredentialVerifier interface {
	VerifyCredential(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// user and organisation ids in the request context.
func Auth(verifier CredentialVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, r, logger, ErrTokenMissing)
				return
			}

			claims, err := verifier.VerifyCredential(token)
			if err != nil {
				respond.Error(w, r, logger, err)
				return
			}

			annotate(r.Context(), claims.OrganisationID)

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, OrganisationIDKey, claims.OrganisationID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func GetUserID(ctx context.Context) uint {
	if id, ok := ctx.Value(UserIDKey).(uint); ok {
		return id
	}
	return 0
}

func GetOrganisationID(ctx context.Context) uint {
	if id, ok := ctx.Value(OrganisationIDKey).(uint); ok {
		return id
	}
	return 0
}
