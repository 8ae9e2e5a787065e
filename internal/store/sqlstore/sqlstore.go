// Package sqlstore persists notifications through the generated queries in
// internal/db. The queries are dialect-neutral and run on MySQL and SQLite.
package sqlstore

import (
	"time"

	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/db"
)

type Store struct {
	queries *db.Queries
	now     func() time.Time
	log     *zap.Logger
}

func New(queries *db.Queries, logger *zap.Logger) *Store {
	return &Store{
		queries: queries,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		log:     logger,
	}
}
