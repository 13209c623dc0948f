package authz

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/models"
)

// Authorizer verifies the caller's authorization and user-info tokens and
// returns the identity they describe.
type Authorizer interface {
	AuthorizeUser(authorization, userInfo string) (models.UserInfo, error)
}

const (
	claimRole      = "accreditation/role"
	claimUserID    = "user/uuid"
	claimFirstName = "user/firstName"
	claimLastName  = "user/lastName"

	DefaultRequiredRole = "role/dataadministrator"
)

// AnonymousUser is returned for every request when authentication is disabled.
var AnonymousUser = models.UserInfo{
	UserID:    "1234-1234-1234-1234",
	FirstName: "Test",
	LastName:  "User",
}

type Config struct {
	Enabled      bool
	Audience     string
	RequiredRole string
	Keyfunc      jwt.Keyfunc
}

type JWTAuthorizer struct {
	enabled      bool
	audience     string
	requiredRole string
	keyfunc      jwt.Keyfunc
	parser       *jwt.Parser
}

func NewJWTAuthorizer(cfg Config) *JWTAuthorizer {
	role := cfg.RequiredRole
	if role == "" {
		role = DefaultRequiredRole
	}
	return &JWTAuthorizer{
		enabled:      cfg.Enabled,
		audience:     cfg.Audience,
		requiredRole: role,
		keyfunc:      cfg.Keyfunc,
		parser:       jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "RS512"})),
	}
}

// AuthorizeUser checks both tokens' signatures, the audience and role of the
// authorization token, and that both tokens belong to the same user.
func (a *JWTAuthorizer) AuthorizeUser(authorization, userInfo string) (models.UserInfo, error) {
	if !a.enabled {
		return AnonymousUser, nil
	}
	if authorization == "" {
		return models.UserInfo{}, apperrors.Auth("Unauthorized. No authorization token was provided", nil)
	}
	if userInfo == "" {
		return models.UserInfo{}, apperrors.Auth("Unauthorized. No user info token was provided", nil)
	}

	authClaims, err := a.parse(authorization, "aud", "sub", claimRole, claimUserID)
	if err != nil {
		return models.UserInfo{}, err
	}
	if !authClaims.VerifyAudience(a.audience, true) {
		return models.UserInfo{}, apperrors.Auth("Unauthorized: Invalid audience", nil)
	}
	if role := fmt.Sprint(authClaims[claimRole]); role != a.requiredRole {
		return models.UserInfo{}, apperrors.Auth(fmt.Sprintf("Can't start job with role: %s", role), nil)
	}

	userClaims, err := a.parse(userInfo, claimUserID, claimFirstName, claimLastName)
	if err != nil {
		return models.UserInfo{}, err
	}
	if fmt.Sprint(authClaims[claimUserID]) != fmt.Sprint(userClaims[claimUserID]) {
		return models.UserInfo{}, apperrors.Auth("Token mismatch", nil)
	}

	return models.UserInfo{
		UserID:    fmt.Sprint(userClaims[claimUserID]),
		FirstName: fmt.Sprint(userClaims[claimFirstName]),
		LastName:  fmt.Sprint(userClaims[claimLastName]),
	}, nil
}

func (a *JWTAuthorizer) parse(raw string, required ...string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, err := a.parser.ParseWithClaims(raw, claims, a.keyfunc); err != nil {
		return nil, apperrors.Auth(fmt.Sprintf("Unauthorized: %v", err), err)
	}
	for _, name := range required {
		if _, ok := claims[name]; !ok {
			return nil, apperrors.Auth(fmt.Sprintf("Unauthorized: Token is missing the %q claim", name), nil)
		}
	}
	return claims, nil
}
