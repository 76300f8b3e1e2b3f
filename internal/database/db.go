package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"webtalk/config"
)

// OpenPostgres opens the shared connection pool used by the PostgreSQL gateway.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("connected to database",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))

	return db, nil
}

// Database owns the PostgreSQL schema. It reuses the gateway's *sql.DB.
type Database struct {
	*gorm.DB
	logger *zap.Logger
}

func NewDatabase(sqlDB *sql.DB, logger *zap.Logger) (*Database, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return &Database{DB: db, logger: logger}, nil
}

func (db *Database) Migrate() error {
	// gen_random_uuid() is built in from PostgreSQL 13; older servers need pgcrypto.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		db.logger.Warn("could not ensure pgcrypto extension", zap.Error(err))
	}

	err := db.AutoMigrate(&User{}, &ChatRoom{}, &RoomMember{}, &Message{}, &UserStatus{})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	db.logger.Info("database migration completed")
	return nil
}
