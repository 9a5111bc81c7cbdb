package auth

import (
	"net/http"
)

const sessionCookieName = "gormadmin_session"

// CreateAuthMiddleware creates HTTP middleware for authentication
func CreateAuthMiddleware(authConfig *AuthConfig) func(http.Handler) http.Handler {
	if authConfig == nil || !authConfig.Enabled {
		// No-op middleware when auth is disabled
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Let the login/logout endpoints handle themselves
			if isAuthEndpoint(r.URL.Path, authConfig) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := getUserFromSession(r, authConfig)
			if err != nil && authConfig.RequireAuth {
				http.Error(w, `{"detail": "Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			if user != nil {
				ctx = WithAuthUser(ctx, user)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isAuthEndpoint checks if the path is an authentication endpoint
func isAuthEndpoint(path string, authConfig *AuthConfig) bool {
	return hasSuffixPath(path, authConfig.LoginPath) || hasSuffixPath(path, authConfig.LogoutPath)
}

func hasSuffixPath(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	return path == suffix || (len(path) > len(suffix) && path[len(path)-len(suffix):] == suffix)
}

// getUserFromSession retrieves the user from the session cookie
func getUserFromSession(r *http.Request, authConfig *AuthConfig) (*AuthUser, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, err
	}

	return authConfig.SessionStore.GetSession(r.Context(), cookie.Value)
}

// CreateSessionCookie creates a session cookie for the authenticated user
func CreateSessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
}

// DeleteSessionCookie creates a cookie that deletes the session
func DeleteSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	}
}
