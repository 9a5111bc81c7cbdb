package gorm

import (
	"context"
	"errors"
	"net/http"
	"sync"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MiddlewareConfig configures the database middleware.
type MiddlewareConfig struct {
	// Dialector opens the connection, e.g. sqlite.Open(path).
	Dialector gorm.Dialector
	// GormConfig is passed to gorm.Open unchanged; nil gets a default
	// config with the admin logger attached.
	GormConfig *gorm.Config
	// GenerateSchemas runs AutoMigrate for Models on first connect.
	GenerateSchemas bool
	// Models lists the model values to migrate when GenerateSchemas is set.
	Models []any

	Logger zerolog.Logger
}

// DBMiddleware owns the shared database connection for every view of an
// admin site. The connection opens lazily on first use (or eagerly through
// Startup), and the HTTP middleware rolls back any transaction still open
// when a handler panics or answers with a server error.
//
// It implements DBProvider; register it on the admin so it runs before the
// other middlewares.
type DBMiddleware struct {
	cfg MiddlewareConfig
	log zerolog.Logger

	mu        sync.Mutex
	db        *gorm.DB
	initCount int

	txMu sync.Mutex
	txs  map[*gorm.DB]struct{}
}

// NewDBMiddleware creates the middleware; no connection is opened yet.
func NewDBMiddleware(cfg MiddlewareConfig) *DBMiddleware {
	return &DBMiddleware{
		cfg: cfg,
		log: cfg.Logger,
		txs: map[*gorm.DB]struct{}{},
	}
}

// DB returns the shared connection, opening it on first call.
func (m *DBMiddleware) DB(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		if err := m.connect(ctx); err != nil {
			return nil, err
		}
	}
	return m.db.WithContext(ctx), nil
}

// Startup opens the connection eagerly. Calling it during application boot
// is the documented default; lazy opening remains as a fallback.
func (m *DBMiddleware) Startup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return nil
	}
	return m.connect(ctx)
}

// connect must run under mu.
func (m *DBMiddleware) connect(ctx context.Context) error {
	if m.cfg.Dialector == nil {
		return errors.New("no dialector configured")
	}

	gcfg := m.cfg.GormConfig
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: NewLogger(m.log)}
	}
	db, err := gorm.Open(m.cfg.Dialector, gcfg)
	if err != nil {
		return err
	}

	if m.cfg.GenerateSchemas && len(m.cfg.Models) > 0 {
		if err := db.WithContext(ctx).AutoMigrate(m.cfg.Models...); err != nil {
			return err
		}
	}

	m.db = db
	m.initCount++
	m.log.Info().Int("init_count", m.initCount).Msg("database connection opened")
	return nil
}

// InitCount reports how many times a connection was opened.
func (m *DBMiddleware) InitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCount
}

// Shutdown closes the connection if one was opened.
func (m *DBMiddleware) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	m.db = nil
	return sqlDB.Close()
}

// Begin opens a transaction tracked by the middleware. Transactions still
// registered when a request panics or fails with a 5xx are rolled back.
func (m *DBMiddleware) Begin(ctx context.Context) (*gorm.DB, error) {
	db, err := m.DB(ctx)
	if err != nil {
		return nil, err
	}
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	m.txMu.Lock()
	m.txs[tx] = struct{}{}
	m.txMu.Unlock()
	return tx, nil
}

// Commit commits a tracked transaction and unregisters it.
func (m *DBMiddleware) Commit(tx *gorm.DB) error {
	m.release(tx)
	return tx.Commit().Error
}

// Rollback rolls back a tracked transaction and unregisters it.
func (m *DBMiddleware) Rollback(tx *gorm.DB) error {
	m.release(tx)
	return tx.Rollback().Error
}

func (m *DBMiddleware) release(tx *gorm.DB) {
	m.txMu.Lock()
	delete(m.txs, tx)
	m.txMu.Unlock()
}

// rollbackAll rolls back every transaction still registered. Rollback
// failures are logged and swallowed; the original request failure stays the
// primary one.
func (m *DBMiddleware) rollbackAll() {
	m.txMu.Lock()
	open := make([]*gorm.DB, 0, len(m.txs))
	for tx := range m.txs {
		open = append(open, tx)
	}
	m.txs = map[*gorm.DB]struct{}{}
	m.txMu.Unlock()

	for _, tx := range open {
		if err := tx.Rollback().Error; err != nil {
			m.log.Error().Err(err).Msg("rollback after failed request failed")
		}
	}
}

// Handler is the HTTP middleware: it guarantees open tracked transactions
// are rolled back when the downstream handler panics (the panic is re-raised
// so the outer recoverer can answer the request) or when it answers with a
// 5xx status.
func (m *DBMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			if rec := recover(); rec != nil {
				m.rollbackAll()
				panic(rec)
			}
		}()
		next.ServeHTTP(ww, r)
		if ww.Status() >= http.StatusInternalServerError {
			m.rollbackAll()
		}
	})
}
