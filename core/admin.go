package core

import (
	"fmt"
	"net/http"

	"github.com/mpetrov/gormadmin/middleware/auth"
)

// Middleware is a standard net/http middleware.
type Middleware func(http.Handler) http.Handler

// Admin holds the admin panel configuration: branding, authentication, the
// ordered middleware chain, and the registered views.
type Admin struct {
	title      string
	basePath   string
	logoURL    string
	faviconURL string

	auth        *auth.AuthConfig
	middlewares []Middleware

	views     map[string]ModelView
	viewOrder []string // registration order for consistent display
}

// AdminOption configures an Admin instance.
type AdminOption func(*Admin)

// WithTitle sets the admin panel title.
func WithTitle(title string) AdminOption {
	return func(a *Admin) { a.title = title }
}

// WithBasePath sets the mount path prefix (default "/admin").
func WithBasePath(path string) AdminOption {
	return func(a *Admin) { a.basePath = path }
}

// WithLogoURL sets the branding logo URL.
func WithLogoURL(url string) AdminOption {
	return func(a *Admin) { a.logoURL = url }
}

// WithFaviconURL sets the favicon URL.
func WithFaviconURL(url string) AdminOption {
	return func(a *Admin) { a.faviconURL = url }
}

// WithAuth sets the authentication configuration.
func WithAuth(cfg auth.AuthConfig) AdminOption {
	return func(a *Admin) { a.auth = &cfg }
}

// WithMiddleware appends user middlewares to the chain.
func WithMiddleware(mw ...Middleware) AdminOption {
	return func(a *Admin) { a.middlewares = append(a.middlewares, mw...) }
}

// NewAdmin creates a new Admin instance.
func NewAdmin(opts ...AdminOption) *Admin {
	a := &Admin{
		title:    "Admin",
		basePath: "/admin",
		views:    make(map[string]ModelView),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Title returns the configured panel title.
func (a *Admin) Title() string { return a.title }

// BasePath returns the mount path prefix.
func (a *Admin) BasePath() string { return a.basePath }

// LogoURL returns the branding logo URL.
func (a *Admin) LogoURL() string { return a.logoURL }

// FaviconURL returns the favicon URL.
func (a *Admin) FaviconURL() string { return a.faviconURL }

// Auth returns the authentication configuration, or nil when unset.
func (a *Admin) Auth() *auth.AuthConfig { return a.auth }

// Middlewares returns the middleware chain in execution order.
func (a *Admin) Middlewares() []Middleware { return a.middlewares }

// PrependMiddleware inserts a middleware ahead of every user middleware, so
// requests pass through it before any view code runs.
func (a *Admin) PrependMiddleware(mw Middleware) {
	a.middlewares = append([]Middleware{mw}, a.middlewares...)
}

// AddView registers a view under its identity.
func (a *Admin) AddView(v ModelView) error {
	identity := v.Identity()
	if _, exists := a.views[identity]; exists {
		return fmt.Errorf("view with identity %q already registered", identity)
	}
	a.views[identity] = v
	a.viewOrder = append(a.viewOrder, identity)
	return nil
}

// View retrieves a registered view by identity.
func (a *Admin) View(identity string) (ModelView, bool) {
	v, ok := a.views[identity]
	return v, ok
}

// Views returns all registered views in registration order.
func (a *Admin) Views() []ModelView {
	ordered := make([]ModelView, 0, len(a.viewOrder))
	for _, identity := range a.viewOrder {
		ordered = append(ordered, a.views[identity])
	}
	return ordered
}
