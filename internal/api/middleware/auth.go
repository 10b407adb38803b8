package middleware

import (
	"context"
	"errors"
	"net/http"

	"fittrack/internal/common"
	"fittrack/internal/common/security"
	"fittrack/internal/domain/model"
	"fittrack/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const CurrentUserCtxKey contextKey = "currentUser"

// Authenticator gates a route group behind a valid token. The token is
// verified by the jwtauth middleware installed at the router root; this
// layer maps verification failures to 401s, resolves the subject against
// the user store and injects the resolved user into the request context.
// A token whose subject no longer exists is rejected like any other
// invalid token.
func Authenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				switch {
				case errors.Is(err, jwtauth.ErrExpired):
					common.RespondWithError(w, http.StatusUnauthorized, "token expired")
				case errors.Is(err, jwtauth.ErrNoTokenFound) || err == nil:
					common.RespondWithError(w, http.StatusUnauthorized, "authorization token required")
				default:
					common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				common.RespondWithServiceError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user placed by Authenticator.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(*model.User)
	return user, ok
}
