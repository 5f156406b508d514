package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Handle owns the process-wide database connection pool. The pool is opened
// lazily on first Get and reused for every subsequent request; callers never
// open connections of their own.
type Handle struct {
	mu      sync.Mutex
	connStr string
	db      *sql.DB
}

func NewHandle(connStr string) *Handle {
	return &Handle{connStr: connStr}
}

// NewHandleFromDB wraps an already-open pool. Used by tests.
func NewHandleFromDB(db *sql.DB) *Handle {
	return &Handle{db: db}
}

// Get returns the shared pool, establishing and pinging it on first use.
func (h *Handle) Get(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	db, err := sql.Open("pgx", h.connStr)
	if err != nil {
		return nil, fmt.Errorf("database.Handle.Get: open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database.Handle.Get: ping: %w", err)
	}

	h.db = db
	return h.db, nil
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
