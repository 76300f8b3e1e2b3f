package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"webtalk/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE,
	full_name  TEXT NOT NULL,
	email      TEXT,
	avatar_url TEXT
);

CREATE TABLE IF NOT EXISTS chat_rooms (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_by TEXT NOT NULL,
	is_private INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS room_members (
	user_id TEXT NOT NULL,
	room_id TEXT NOT NULL,
	PRIMARY KEY (user_id, room_id)
);
CREATE INDEX IF NOT EXISTS idx_room_members_room_id ON room_members (room_id);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	room_id      TEXT NOT NULL,
	sender_id    TEXT NOT NULL,
	content      TEXT NOT NULL,
	message_type TEXT NOT NULL DEFAULT 'text',
	reply_to_id  TEXT,
	sent_at      INTEGER NOT NULL,
	edited       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_messages_room_sent ON messages (room_id, sent_at DESC);

CREATE TABLE IF NOT EXISTS user_status (
	user_id    TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=OFF",
	"PRAGMA temp_store=MEMORY",
}

// OpenSQLite opens a connection pool on the database file at cfg.Path and
// makes sure the schema exists.
func OpenSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*sqlitex.Pool, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareSQLiteConn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Path, err)
	}

	if err := MigrateSQLite(ctx, pool); err != nil {
		_ = pool.Close()
		return nil, err
	}

	logger.Info("sqlite pool opened", zap.String("path", cfg.Path), zap.Int("pool_size", poolSize))
	return pool, nil
}

func MigrateSQLite(ctx context.Context, pool *sqlitex.Pool) error {
	conn, err := pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take sqlite connection: %w", err)
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		return fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return nil
}

func prepareSQLiteConn(conn *sqlite.Conn) error {
	for _, pragma := range sqlitePragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}
