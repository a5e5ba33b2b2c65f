package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_ledger/internal/config"
	"github.com/Freeeeeet/tutor_ledger/internal/repository"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store открытое хранилище записей и всё, что нужно для его жизни
type Store struct {
	Records service.RecordStore

	// Listener nil для локального хранилища: там уведомления не нужны
	Listener *Listener

	pool  *pgxpool.Pool
	local *repository.LocalRepository
}

// OpenStore подключается к хранилищу, выбранному в конфиге.
// Для postgres перед работой применяются миграции.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		local, err := repository.OpenLocalRepository(cfg.SQLitePath, cfg.AppID, logger)
		if err != nil {
			return nil, err
		}
		return &Store{Records: local, local: local}, nil

	case config.DriverPostgres:
		pool, err := OpenPool(ctx, cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}

		if err := Migrate(ctx, pool, cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, err
		}

		sessions := repository.NewSessionRepository(pool, cfg.AppID, logger)
		return &Store{
			Records:  sessions,
			Listener: NewListener(sessions, logger),
			pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// OpenPool создаёт пул соединений и проверяет доступность базы
func OpenPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Connected to PostgreSQL")
	return pool, nil
}

// Migrate применяет миграции из каталога dir
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, dir, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// Close освобождает соединения
func (s *Store) Close() error {
	if s.local != nil {
		return s.local.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
