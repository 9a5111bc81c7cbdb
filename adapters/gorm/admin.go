package gorm

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mpetrov/gormadmin/api"
	"github.com/mpetrov/gormadmin/core"
	"github.com/mpetrov/gormadmin/filestore"
)

// Admin ties the admin configuration to a database middleware and a file
// storage registry. The database middleware is inserted ahead of every
// user middleware so its rollback guarantee covers all of them.
type Admin struct {
	*core.Admin

	db    *DBMiddleware
	files *filestore.Manager
	log   zerolog.Logger
}

// AdminConfig configures a database-backed admin site.
type AdminConfig struct {
	Middleware *DBMiddleware
	// Files is the file storage registry; nil disables the file route.
	Files  *filestore.Manager
	Logger zerolog.Logger
}

// NewAdmin creates the admin site. Options are the shared core options
// (title, base path, auth, extra middlewares).
func NewAdmin(cfg AdminConfig, opts ...core.AdminOption) *Admin {
	a := &Admin{
		Admin: core.NewAdmin(opts...),
		db:    cfg.Middleware,
		files: cfg.Files,
		log:   cfg.Logger,
	}
	if a.db != nil {
		a.PrependMiddleware(a.db.Handler)
	}
	return a
}

// DBMiddleware returns the site's database middleware.
func (a *Admin) DBMiddleware() *DBMiddleware { return a.db }

// Files returns the file storage registry, or nil.
func (a *Admin) Files() *filestore.Manager { return a.files }

// NewView builds a view over model backed by the site's database
// middleware and registers it.
func (a *Admin) NewView(model any, opts ...ViewOption) (*ModelView, error) {
	opts = append([]ViewOption{WithLogger(a.log)}, opts...)
	view, err := NewModelView(a.db, model, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.AddView(view); err != nil {
		return nil, err
	}
	return view, nil
}

// Handler returns the HTTP handler for the whole admin surface, meant to
// be mounted at the site's base path.
func (a *Admin) Handler() http.Handler {
	return api.NewRouter(a.Admin, a.files, a.log)
}

// Startup opens the database connection eagerly.
func (a *Admin) Startup(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.Startup(ctx)
}

// Shutdown closes the database connection.
func (a *Admin) Shutdown() error {
	if a.db == nil {
		return nil
	}
	return a.db.Shutdown()
}
