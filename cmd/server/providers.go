package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"webtalk/config"
	"webtalk/infrastructure"
	"webtalk/internal/database"
	"webtalk/internal/storage"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := infrastructure.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = logger.Sync() }
	return logger, cleanup, nil
}

// provideGateway opens the store selected by store.driver and brings its schema up to date.
func provideGateway(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Gateway, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := migratePostgres(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		cleanup := func() { db.Close() }
		return storage.NewPostgresStorage(db), cleanup, nil

	case config.DriverSQLite:
		pool, err := database.OpenSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := pool.Close(); err != nil {
				logger.Error("closing sqlite pool", zap.Error(err))
			}
		}
		return storage.NewSQLiteStorage(pool), cleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// migrate applies the schema of the configured store.
func migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		sqlDB, err := database.OpenPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return migratePostgres(sqlDB, logger)

	case config.DriverSQLite:
		pool, err := database.OpenSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return err
		}
		logger.Info("sqlite schema is up to date", zap.String("path", cfg.SQLite.Path))
		return pool.Close()
	}
	return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func migratePostgres(sqlDB *sql.DB, logger *zap.Logger) error {
	db, err := database.NewDatabase(sqlDB, logger)
	if err != nil {
		return err
	}
	return db.Migrate()
}
