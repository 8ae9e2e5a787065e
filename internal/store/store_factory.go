package store

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/db"
	"github.com/chaizz/lumen-Park/internal/directory"
	"github.com/chaizz/lumen-Park/internal/repository"
	"github.com/chaizz/lumen-Park/internal/store/memory"
	"github.com/chaizz/lumen-Park/internal/store/mysql"
	"github.com/chaizz/lumen-Park/internal/store/sqlite"
	"github.com/chaizz/lumen-Park/internal/store/sqlstore"
)

const (
	DialectMemory = "memory"
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

// Backend is the relational connection shared by the notification store and
// the user directory. DB is nil for the in-memory backend.
type Backend struct {
	DB      *sql.DB
	Dialect string
}

func NewBackend(cfg *config.Config, logger *zap.Logger) (*Backend, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch {
	case cfg.MySQLDSN != "":
		dialect = DialectMySQL
		sqlDB, err = mysql.Open(ctx, cfg.MySQLDSN)
	case cfg.SQLitePath != "":
		dialect = DialectSQLite
		sqlDB, err = sqlite.Open(ctx, cfg.SQLitePath)
	default:
		logger.Warn("no database configured, notifications are kept in memory")
		return &Backend{Dialect: DialectMemory}, func() {}, nil
	}
	if err != nil {
		logger.Error("database open failed", zap.String("dialect", dialect), zap.Error(err))
		return nil, nil, err
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("database close failed", zap.String("dialect", dialect), zap.Error(err))
		}
	}
	logger.Info("database connected", zap.String("dialect", dialect))
	return &Backend{DB: sqlDB, Dialect: dialect}, cleanup, nil
}

func NewStore(backend *Backend, logger *zap.Logger) repository.NotificationRepository {
	if backend.DB == nil {
		return memory.New(logger)
	}
	return sqlstore.New(db.New(backend.DB), logger)
}

// NewDirectory reads display identities from the shared users table when
// MySQL is configured. Other backends fall back to an empty static directory,
// which makes the service substitute placeholder senders.
func NewDirectory(backend *Backend, logger *zap.Logger) (repository.UserDirectory, error) {
	if backend.Dialect == DialectMySQL {
		return directory.NewGorm(backend.DB, logger)
	}
	return directory.NewStatic(), nil
}
