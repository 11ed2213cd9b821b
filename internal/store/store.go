// Package store is the postgres persistence layer behind the catalog, order,
// loyalty and admin surfaces.
package store

import (
	"database/sql"

	"simmer-assistant/internal/common/logger"
)

// Store runs all SQL against one shared connection pool. The assistant reader
// interfaces (menu, orders, loyalty, promos) are all satisfied by this type.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

// New wraps an open connection pool.
func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log}
}
