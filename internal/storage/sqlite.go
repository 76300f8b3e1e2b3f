package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SQLiteStorage is the embedded Gateway. Identifiers are generated here and
// timestamps are stored as unix nanoseconds.
type SQLiteStorage struct {
	pool *sqlitex.Pool

	clockMu  sync.Mutex
	lastTick int64
}

func NewSQLiteStorage(pool *sqlitex.Pool) *SQLiteStorage {
	return &SQLiteStorage{pool: pool}
}

// tick returns a strictly increasing unix-nanosecond timestamp so that
// messages written in the same nanosecond still sort in send order.
func (s *SQLiteStorage) tick() int64 {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	now := time.Now().UnixNano()
	if now <= s.lastTick {
		now = s.lastTick + 1
	}
	s.lastTick = now
	return now
}

func (s *SQLiteStorage) execute(ctx context.Context, query string, opts *sqlitex.ExecOptions) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	return handleSQLiteError(sqlitex.Execute(conn, query, opts))
}

func handleSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	switch sqlite.ErrCode(err) {
	case sqlite.ResultConstraintUnique, sqlite.ResultConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case sqlite.ResultConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	}
	return err
}

func nullable(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

func columnNullString(stmt *sqlite.Stmt, col int) sql.NullString {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return sql.NullString{}
	}
	return sql.NullString{String: stmt.ColumnText(col), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Users

const sqliteUserColumns = "id, username, full_name, email, avatar_url"

func scanSQLiteUser(stmt *sqlite.Stmt) *User {
	return &User{
		ID:        stmt.ColumnText(0),
		Username:  stmt.ColumnText(1),
		FullName:  stmt.ColumnText(2),
		Email:     columnNullString(stmt, 3),
		AvatarURL: columnNullString(stmt, 4),
	}
}

func (s *SQLiteStorage) SaveUser(ctx context.Context, user *User) error {
	return s.execute(ctx, `
		INSERT INTO users (id, username, full_name, email, avatar_url)
		VALUES (?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{user.ID, user.Username, user.FullName, nullable(user.Email), nullable(user.AvatarURL)},
	})
}

func (s *SQLiteStorage) UserByID(ctx context.Context, id string) (*User, error) {
	return s.queryUser(ctx, "SELECT "+sqliteUserColumns+" FROM users WHERE id = ?", id)
}

func (s *SQLiteStorage) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.queryUser(ctx, "SELECT "+sqliteUserColumns+" FROM users WHERE username = ?", username)
}

func (s *SQLiteStorage) queryUser(ctx context.Context, query, arg string) (*User, error) {
	var user *User
	err := s.execute(ctx, query, &sqlitex.ExecOptions{
		Args: []any{arg},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			user = scanSQLiteUser(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLiteStorage) Users(ctx context.Context) ([]*User, error) {
	users := []*User{}
	err := s.execute(ctx, "SELECT "+sqliteUserColumns+" FROM users ORDER BY username", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			users = append(users, scanSQLiteUser(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQLiteStorage) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	if patch.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Username != nil {
		set("username", *patch.Username)
	}
	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		set("email", nullable(*patch.Email))
	}
	if patch.AvatarURL != nil {
		set("avatar_url", nullable(*patch.AvatarURL))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))
	return s.execute(ctx, query, &sqlitex.ExecOptions{Args: args})
}

func (s *SQLiteStorage) DeleteUser(ctx context.Context, id string) error {
	return s.execute(ctx, "DELETE FROM users WHERE id = ?", &sqlitex.ExecOptions{Args: []any{id}})
}

// Rooms

const sqliteRoomColumns = "id, name, created_by, is_private, created_at"

func scanSQLiteRoom(stmt *sqlite.Stmt) *Room {
	return &Room{
		ID:        stmt.ColumnText(0),
		Name:      stmt.ColumnText(1),
		CreatedBy: stmt.ColumnText(2),
		IsPrivate: stmt.ColumnInt(3) != 0,
		CreatedAt: time.Unix(0, stmt.ColumnInt64(4)).UTC(),
	}
}

func (s *SQLiteStorage) SaveRoom(ctx context.Context, room *Room) error {
	id := uuid.New().String()
	createdAt := s.tick()

	err := s.execute(ctx, `
		INSERT INTO chat_rooms (id, name, created_by, is_private, created_at)
		VALUES (?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{id, room.Name, room.CreatedBy, boolToInt(room.IsPrivate), createdAt},
	})
	if err != nil {
		return err
	}

	room.ID = id
	room.CreatedAt = time.Unix(0, createdAt).UTC()
	return nil
}

func (s *SQLiteStorage) RoomByID(ctx context.Context, id string) (*Room, error) {
	var room *Room
	err := s.execute(ctx, "SELECT "+sqliteRoomColumns+" FROM chat_rooms WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			room = scanSQLiteRoom(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *SQLiteStorage) Rooms(ctx context.Context) ([]*Room, error) {
	rooms := []*Room{}
	err := s.execute(ctx, "SELECT "+sqliteRoomColumns+" FROM chat_rooms ORDER BY created_at", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rooms = append(rooms, scanSQLiteRoom(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *SQLiteStorage) DeleteRoom(ctx context.Context, id string) error {
	return s.execute(ctx, "DELETE FROM chat_rooms WHERE id = ?", &sqlitex.ExecOptions{Args: []any{id}})
}

// Memberships

func (s *SQLiteStorage) AddMember(ctx context.Context, userID, roomID string) error {
	return s.execute(ctx, `
		INSERT INTO room_members (user_id, room_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, room_id) DO NOTHING`, &sqlitex.ExecOptions{
		Args: []any{userID, roomID},
	})
}

func (s *SQLiteStorage) RemoveMember(ctx context.Context, userID, roomID string) error {
	return s.execute(ctx, "DELETE FROM room_members WHERE user_id = ? AND room_id = ?", &sqlitex.ExecOptions{
		Args: []any{userID, roomID},
	})
}

func (s *SQLiteStorage) RoomMembers(ctx context.Context, roomID string) ([]string, error) {
	return s.queryIDs(ctx, "SELECT user_id FROM room_members WHERE room_id = ? ORDER BY user_id", roomID)
}

func (s *SQLiteStorage) UserRooms(ctx context.Context, userID string) ([]string, error) {
	return s.queryIDs(ctx, "SELECT room_id FROM room_members WHERE user_id = ? ORDER BY room_id", userID)
}

func (s *SQLiteStorage) queryIDs(ctx context.Context, query, arg string) ([]string, error) {
	ids := []string{}
	err := s.execute(ctx, query, &sqlitex.ExecOptions{
		Args: []any{arg},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Messages

func (s *SQLiteStorage) SaveMessage(ctx context.Context, msg *Message) error {
	id := uuid.New().String()
	sentAt := s.tick()

	err := s.execute(ctx, `
		INSERT INTO messages (id, room_id, sender_id, content, message_type, reply_to_id, sent_at, edited)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)`, &sqlitex.ExecOptions{
		Args: []any{id, msg.RoomID, msg.SenderID, msg.Content, msg.MessageType, nullable(msg.ReplyToID), sentAt},
	})
	if err != nil {
		return err
	}

	msg.ID = id
	msg.SentAt = time.Unix(0, sentAt).UTC()
	msg.Edited = false
	return nil
}

func (s *SQLiteStorage) RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]*Message, error) {
	messages := []*Message{}
	err := s.execute(ctx, `
		SELECT id, room_id, sender_id, content, message_type, reply_to_id, sent_at, edited
		FROM messages WHERE room_id = ?
		ORDER BY sent_at DESC, rowid DESC
		LIMIT ? OFFSET ?`, &sqlitex.ExecOptions{
		Args: []any{roomID, limit, offset},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			messages = append(messages, &Message{
				ID:          stmt.ColumnText(0),
				RoomID:      stmt.ColumnText(1),
				SenderID:    stmt.ColumnText(2),
				Content:     stmt.ColumnText(3),
				MessageType: stmt.ColumnText(4),
				ReplyToID:   columnNullString(stmt, 5),
				SentAt:      time.Unix(0, stmt.ColumnInt64(6)).UTC(),
				Edited:      stmt.ColumnInt(7) != 0,
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *SQLiteStorage) EditMessage(ctx context.Context, id, content string) error {
	return s.execute(ctx, "UPDATE messages SET content = ?, edited = 1 WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{content, id},
	})
}

func (s *SQLiteStorage) DeleteMessage(ctx context.Context, id string) error {
	return s.execute(ctx, "DELETE FROM messages WHERE id = ?", &sqlitex.ExecOptions{Args: []any{id}})
}

// Presence

func (s *SQLiteStorage) UpsertStatus(ctx context.Context, userID, status string) error {
	return s.execute(ctx, `
		INSERT INTO user_status (user_id, status, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{userID, status, time.Now().UnixNano()}})
}

func (s *SQLiteStorage) StatusByUserID(ctx context.Context, userID string) (*Status, error) {
	var status *Status
	err := s.execute(ctx, "SELECT user_id, status, updated_at FROM user_status WHERE user_id = ?", &sqlitex.ExecOptions{
		Args: []any{userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			status = &Status{
				UserID:    stmt.ColumnText(0),
				Status:    stmt.ColumnText(1),
				UpdatedAt: time.Unix(0, stmt.ColumnInt64(2)).UTC(),
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
