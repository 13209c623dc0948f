package authz

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/apperrors"
)

// RequireUser authenticates the caller's two tokens and stores the verified
// user on the request context.
func RequireUser(authorizer Authorizer, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization, userInfo := tokensFromRequest(r)
			user, err := authorizer.AuthorizeUser(authorization, userInfo)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("authorization failed")
				status := apperrors.HTTPStatus(err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": apperrors.PublicMessage(err)})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUserHandler applies the middleware inline when registering routes.
func RequireUserHandler(authorizer Authorizer, logger zerolog.Logger, next http.Handler) http.Handler {
	return RequireUser(authorizer, logger)(next)
}
