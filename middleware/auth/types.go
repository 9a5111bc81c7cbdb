package auth

import (
	"context"
	"net/http"
)

// Identity represents a user identifier of any type (string, int64, uint, ...).
type Identity any

// AuthUser represents an authenticated user in the system
type AuthUser struct {
	ID       Identity `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// AuthenticatorFunc validates credentials and returns the matching user.
type AuthenticatorFunc func(ctx context.Context, username, password string) (*AuthUser, error)

// AuthConfig holds the complete authentication configuration
type AuthConfig struct {
	// Enabled determines if authentication is active
	Enabled bool

	// LoginPath is the URL path for the login endpoint (default: "/login")
	LoginPath string

	// LogoutPath is the URL path for logout (default: "/logout")
	LogoutPath string

	// Authenticator is the function used to validate user credentials
	Authenticator AuthenticatorFunc

	// SessionStore handles session persistence
	SessionStore SessionStore

	// RequireAuth determines if all admin routes require authentication.
	// If false, unauthenticated requests pass through without an identity.
	RequireAuth bool
}

// SessionStore defines the interface for session management
type SessionStore interface {
	// GetSession retrieves a user session by session ID
	GetSession(ctx context.Context, sessionID string) (*AuthUser, error)

	// CreateSession creates a new session for the user and returns the session ID
	CreateSession(ctx context.Context, user *AuthUser) (sessionID string, err error)

	// DeleteSession removes a session by session ID
	DeleteSession(ctx context.Context, sessionID string) error

	// CleanExpiredSessions removes expired sessions (called periodically)
	CleanExpiredSessions(ctx context.Context) error
}

// AuthMiddleware wraps HTTP handlers to provide authentication
type AuthMiddleware func(http.Handler) http.Handler
