package auth

// NoAuth creates a disabled AuthConfig. All requests pass through without
// an identity attached.
func NoAuth() AuthConfig {
	return AuthConfig{Enabled: false}
}
