package authz

import (
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AudienceForStack returns the expected token audience for a deployment stack.
func AudienceForStack(stack string) string {
	if stack == "qa" {
		return "datastore-qa"
	}
	return "datastore"
}

// NewJWKSKeyfunc resolves signing keys from a JWKS endpoint, refreshing them
// in the background. The returned stop function ends the refresh loop.
func NewJWKSKeyfunc(url string, refresh time.Duration, logger zerolog.Logger) (jwt.Keyfunc, func(), error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   refresh,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error().Err(err).Str("jwks_url", url).Msg("failed to refresh JWKS")
		},
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load JWKS from %s", url)
	}
	return jwks.Keyfunc, jwks.EndBackground, nil
}
