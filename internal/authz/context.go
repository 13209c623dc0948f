package authz

import (
	"context"
	"net/http"
	"strings"

	"github.com/datastore/job-service/internal/models"
)

type contextKey string

const userInfoKey contextKey = "user_info"

const (
	authorizationCookie = "authorization"
	userInfoHeader      = "User-Info"
)

// Cookie names accepted for the user-info token, in lookup order.
var userInfoCookies = []string{"user-info", "user_info"}

// WithUser stores the authenticated caller on the context.
func WithUser(ctx context.Context, user models.UserInfo) context.Context {
	return context.WithValue(ctx, userInfoKey, user)
}

func UserFromRequest(r *http.Request) (models.UserInfo, bool) {
	user, ok := r.Context().Value(userInfoKey).(models.UserInfo)
	if !ok || user.UserID == "" {
		return models.UserInfo{}, false
	}
	return user, true
}

// tokensFromRequest reads the authorization and user-info tokens from cookies,
// falling back to headers.
func tokensFromRequest(r *http.Request) (authorization, userInfo string) {
	if c, err := r.Cookie(authorizationCookie); err == nil {
		authorization = c.Value
	}
	if authorization == "" {
		authorization = strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	}
	for _, name := range userInfoCookies {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			userInfo = c.Value
			break
		}
	}
	if userInfo == "" {
		userInfo = strings.TrimSpace(r.Header.Get(userInfoHeader))
	}
	return authorization, userInfo
}
