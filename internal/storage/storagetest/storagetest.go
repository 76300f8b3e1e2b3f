// Package storagetest provides gateways for tests: a real SQLite gateway on
// a temporary file and a Spy that records every call it forwards.
package storagetest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"webtalk/config"
	"webtalk/internal/database"
	"webtalk/internal/storage"
)

// NewSQLite opens a migrated SQLite gateway in t's temporary directory.
func NewSQLite(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	cfg := config.SQLiteConfig{
		Path:     filepath.Join(t.TempDir(), "webtalk.db"),
		PoolSize: 2,
	}
	pool, err := database.OpenSQLite(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	return storage.NewSQLiteStorage(pool)
}

// ErrInjected is returned by a Spy configured with FailWith(nil).
var ErrInjected = errors.New("injected storage failure")

// Spy forwards to Next and records the name of every method called. When
// Fail is set, every call returns it instead of reaching Next.
type Spy struct {
	Next storage.Gateway

	mu    sync.Mutex
	calls []string
	fail  error
}

func NewSpy(next storage.Gateway) *Spy {
	return &Spy{Next: next}
}

// FailWith makes every later call fail with err (ErrInjected when err is nil).
func (s *Spy) FailWith(err error) {
	if err == nil {
		err = ErrInjected
	}
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func (s *Spy) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Spy) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	return s.fail
}

func (s *Spy) SaveUser(ctx context.Context, user *storage.User) error {
	if err := s.record("SaveUser"); err != nil {
		return err
	}
	return s.Next.SaveUser(ctx, user)
}

func (s *Spy) UserByID(ctx context.Context, id string) (*storage.User, error) {
	if err := s.record("UserByID"); err != nil {
		return nil, err
	}
	return s.Next.UserByID(ctx, id)
}

func (s *Spy) UserByUsername(ctx context.Context, username string) (*storage.User, error) {
	if err := s.record("UserByUsername"); err != nil {
		return nil, err
	}
	return s.Next.UserByUsername(ctx, username)
}

func (s *Spy) Users(ctx context.Context) ([]*storage.User, error) {
	if err := s.record("Users"); err != nil {
		return nil, err
	}
	return s.Next.Users(ctx)
}

func (s *Spy) UpdateUser(ctx context.Context, id string, patch storage.UserPatch) error {
	if err := s.record("UpdateUser"); err != nil {
		return err
	}
	return s.Next.UpdateUser(ctx, id, patch)
}

func (s *Spy) DeleteUser(ctx context.Context, id string) error {
	if err := s.record("DeleteUser"); err != nil {
		return err
	}
	return s.Next.DeleteUser(ctx, id)
}

func (s *Spy) SaveRoom(ctx context.Context, room *storage.Room) error {
	if err := s.record("SaveRoom"); err != nil {
		return err
	}
	return s.Next.SaveRoom(ctx, room)
}

func (s *Spy) RoomByID(ctx context.Context, id string) (*storage.Room, error) {
	if err := s.record("RoomByID"); err != nil {
		return nil, err
	}
	return s.Next.RoomByID(ctx, id)
}

func (s *Spy) Rooms(ctx context.Context) ([]*storage.Room, error) {
	if err := s.record("Rooms"); err != nil {
		return nil, err
	}
	return s.Next.Rooms(ctx)
}

func (s *Spy) DeleteRoom(ctx context.Context, id string) error {
	if err := s.record("DeleteRoom"); err != nil {
		return err
	}
	return s.Next.DeleteRoom(ctx, id)
}

func (s *Spy) AddMember(ctx context.Context, userID, roomID string) error {
	if err := s.record("AddMember"); err != nil {
		return err
	}
	return s.Next.AddMember(ctx, userID, roomID)
}

func (s *Spy) RemoveMember(ctx context.Context, userID, roomID string) error {
	if err := s.record("RemoveMember"); err != nil {
		return err
	}
	return s.Next.RemoveMember(ctx, userID, roomID)
}

func (s *Spy) RoomMembers(ctx context.Context, roomID string) ([]string, error) {
	if err := s.record("RoomMembers"); err != nil {
		return nil, err
	}
	return s.Next.RoomMembers(ctx, roomID)
}

func (s *Spy) UserRooms(ctx context.Context, userID string) ([]string, error) {
	if err := s.record("UserRooms"); err != nil {
		return nil, err
	}
	return s.Next.UserRooms(ctx, userID)
}

func (s *Spy) SaveMessage(ctx context.Context, msg *storage.Message) error {
	if err := s.record("SaveMessage"); err != nil {
		return err
	}
	return s.Next.SaveMessage(ctx, msg)
}

func (s *Spy) RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]*storage.Message, error) {
	if err := s.record("RoomMessages"); err != nil {
		return nil, err
	}
	return s.Next.RoomMessages(ctx, roomID, limit, offset)
}

func (s *Spy) EditMessage(ctx context.Context, id, content string) error {
	if err := s.record("EditMessage"); err != nil {
		return err
	}
	return s.Next.EditMessage(ctx, id, content)
}

func (s *Spy) DeleteMessage(ctx context.Context, id string) error {
	if err := s.record("DeleteMessage"); err != nil {
		return err
	}
	return s.Next.DeleteMessage(ctx, id)
}

func (s *Spy) UpsertStatus(ctx context.Context, userID, status string) error {
	if err := s.record("UpsertStatus"); err != nil {
		return err
	}
	return s.Next.UpsertStatus(ctx, userID, status)
}

func (s *Spy) StatusByUserID(ctx context.Context, userID string) (*storage.Status, error) {
	if err := s.record("StatusByUserID"); err != nil {
		return nil, err
	}
	return s.Next.StatusByUserID(ctx, userID)
}

var _ storage.Gateway = (*Spy)(nil)
