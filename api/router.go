package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mpetrov/gormadmin/core"
	"github.com/mpetrov/gormadmin/filestore"
	"github.com/mpetrov/gormadmin/middleware/auth"
)

// NewRouter builds the admin HTTP surface. The chain runs request logging,
// panic recovery, the admin's middlewares in registration order, then
// authentication. The file route sits ahead of the identity routes so
// "file" never resolves as a view identity.
func NewRouter(admin *core.Admin, files *filestore.Manager, log zerolog.Logger) http.Handler {
	h := &handlers{admin: admin, files: files, log: log}

	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(recoverer(log))
	for _, mw := range admin.Middlewares() {
		r.Use(mw)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/file/{storage}/*", h.serveFile)

		r.Route("/{identity}", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Delete("/", h.delete)
			r.Post("/action/{name}", h.action)
			r.Post("/row-action/{name}/{pk}", h.rowAction)
			r.Get("/{pk}", h.detail)
			r.Put("/{pk}", h.edit)
		})
	})

	var handler http.Handler = r
	if admin.Auth() != nil && admin.Auth().Enabled {
		handler = auth.CreateAuthMiddleware(admin.Auth())(handler)
	}
	return handler
}

// requestLogger logs one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

// recoverer answers a panicking request with a JSON 500. Middlewares below
// it may observe the panic first (the database middleware uses that to roll
// back open transactions) as long as they re-panic.
func recoverer(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("request panicked")
					writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
