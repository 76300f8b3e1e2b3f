package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webtalk/config"
	"webtalk/internal/storage"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HTTP: config.HTTPConfig{
			Addr:               ":0",
			RequestTimeout:     time.Second,
			RateLimitRPS:       10,
			CORSAllowedOrigins: []string{"*"},
		},
		Store:  config.StoreConfig{Driver: config.DriverSQLite},
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "webtalk.db"), PoolSize: 2},
		Log:    config.LogConfig{Level: "error"},
	}
}

func TestInitializeServerWithSQLite(t *testing.T) {
	server, cleanup, err := InitializeServer(context.Background(), sqliteConfig(t))
	if err != nil {
		t.Fatalf("InitializeServer: %v", err)
	}
	t.Cleanup(cleanup)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rec.Code)
	}
}

func TestMigrateSQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	for i := 0; i < 2; i++ {
		if err := migrate(context.Background(), cfg, zap.NewNop()); err != nil {
			t.Fatalf("migrate #%d: %v", i+1, err)
		}
	}
}

func TestProvideGatewayUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Driver = "oracle"

	if _, _, err := provideGateway(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("provideGateway accepted an unknown driver")
	}
}

// Serving against a PostgreSQL database must not depend on a prior migrate run.
// Set WEBTALK_TEST_DATABASE_URL to a scratch database to enable.
func TestProvideGatewayPostgresAppliesSchema(t *testing.T) {
	url := os.Getenv("WEBTALK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("WEBTALK_TEST_DATABASE_URL not set")
	}
	cfg := sqliteConfig(t)
	cfg.Store.Driver = config.DriverPostgres
	cfg.Database = config.DatabaseConfig{URL: url, MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}

	ctx := context.Background()
	gateway, cleanup, err := provideGateway(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("provideGateway: %v", err)
	}
	t.Cleanup(cleanup)

	userID, roomID := uuid.NewString(), uuid.NewString()
	if err := gateway.SaveUser(ctx, &storage.User{ID: userID, Username: "pg-" + userID, FullName: "PG"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	t.Cleanup(func() { _ = gateway.DeleteUser(ctx, userID) })

	var sent []string
	for _, content := range []string{"one", "two", "three"} {
		msg := &storage.Message{RoomID: roomID, SenderID: userID, Content: content, MessageType: "text"}
		if err := gateway.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
		sent = append(sent, msg.ID)
	}
	t.Cleanup(func() {
		for _, id := range sent {
			_ = gateway.DeleteMessage(ctx, id)
		}
	})

	msgs, err := gateway.RoomMessages(ctx, roomID, 3, 0)
	if err != nil {
		t.Fatalf("RoomMessages: %v", err)
	}
	if len(msgs) != 3 || msgs[0].ID != sent[2] || msgs[2].ID != sent[0] {
		t.Errorf("RoomMessages order = %v, want newest first", msgs)
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"serve", "migrate"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
	if serve, _, _ := cmd.Find([]string{"serve"}); serve.Long == "" {
		t.Error("serve command does not describe schema handling")
	}
	if cmd.Flags().Lookup("addr") == nil {
		t.Error("--addr flag missing on the root command")
	}
}
