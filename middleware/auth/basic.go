package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

// BasicAuthUser represents a user configured for basic authentication
type BasicAuthUser struct {
	Username string
	Password string
	User     AuthUser
}

// WithBasicAuth creates an AuthConfig that validates a static username ->
// user map with constant-time password comparison.
func WithBasicAuth(users map[string]BasicAuthUser) AuthConfig {
	authenticator := func(ctx context.Context, username, password string) (*AuthUser, error) {
		user, exists := users[username]
		if !exists {
			return nil, errors.New("user not found")
		}

		if subtle.ConstantTimeCompare([]byte(password), []byte(user.Password)) != 1 {
			return nil, errors.New("invalid password")
		}

		return &user.User, nil
	}

	return AuthConfig{
		Enabled:       true,
		LoginPath:     "/login",
		LogoutPath:    "/logout",
		Authenticator: authenticator,
		SessionStore:  NewMemorySessionStore(),
		RequireAuth:   true,
	}
}

// WithSingleUser creates an AuthConfig for one admin user.
func WithSingleUser(username, password string) AuthConfig {
	return WithBasicAuth(map[string]BasicAuthUser{
		username: {
			Username: username,
			Password: password,
			User: AuthUser{
				ID:       username,
				Username: username,
				Roles:    []string{"admin"},
			},
		},
	})
}
