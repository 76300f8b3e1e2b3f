package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// noMatch reports whether err means the lookup key cannot match any row.
// A malformed uuid can never identify a row, so it reads as "absent".
func noMatch(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrInvalidIdentifier)
}

func (s *PostgresStorage) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	if err = handlePQError(err); errors.Is(err, ErrInvalidIdentifier) {
		return nil
	}
	return err
}

// Users

func (s *PostgresStorage) SaveUser(ctx context.Context, user *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, full_name, email, avatar_url)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.FullName, user.Email, user.AvatarURL)
	return handlePQError(err)
}

func (s *PostgresStorage) UserByID(ctx context.Context, id string) (*User, error) {
	return s.queryUser(ctx, `
		SELECT id, username, full_name, email, avatar_url
		FROM users WHERE id = $1`, id)
}

func (s *PostgresStorage) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.queryUser(ctx, `
		SELECT id, username, full_name, email, avatar_url
		FROM users WHERE username = $1`, username)
}

func (s *PostgresStorage) queryUser(ctx context.Context, query string, arg string) (*User, error) {
	user := &User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.FullName, &user.Email, &user.AvatarURL)
	if err = handlePQError(err); err != nil {
		if noMatch(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *PostgresStorage) Users(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, full_name, email, avatar_url
		FROM users ORDER BY username`)
	if err != nil {
		return nil, handlePQError(err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	if patch.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Username != nil {
		set("username", *patch.Username)
	}
	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.AvatarURL != nil {
		set("avatar_url", *patch.AvatarURL)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return s.exec(ctx, query, args...)
}

func (s *PostgresStorage) DeleteUser(ctx context.Context, id string) error {
	return s.exec(ctx, "DELETE FROM users WHERE id = $1", id)
}

// Rooms

func (s *PostgresStorage) SaveRoom(ctx context.Context, room *Room) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO chat_rooms (name, created_by, is_private)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		room.Name, room.CreatedBy, room.IsPrivate).Scan(&room.ID, &room.CreatedAt)
	return handlePQError(err)
}

func (s *PostgresStorage) RoomByID(ctx context.Context, id string) (*Room, error) {
	room := &Room{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_by, is_private, created_at
		FROM chat_rooms WHERE id = $1`, id).Scan(
		&room.ID, &room.Name, &room.CreatedBy, &room.IsPrivate, &room.CreatedAt)
	if err = handlePQError(err); err != nil {
		if noMatch(err) {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

func (s *PostgresStorage) Rooms(ctx context.Context) ([]*Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_by, is_private, created_at
		FROM chat_rooms ORDER BY created_at`)
	if err != nil {
		return nil, handlePQError(err)
	}
	defer rows.Close()

	rooms := []*Room{}
	for rows.Next() {
		room := &Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedBy, &room.IsPrivate, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *PostgresStorage) DeleteRoom(ctx context.Context, id string) error {
	return s.exec(ctx, "DELETE FROM chat_rooms WHERE id = $1", id)
}

// Memberships

func (s *PostgresStorage) AddMember(ctx context.Context, userID, roomID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO room_members (user_id, room_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, room_id) DO NOTHING`, userID, roomID)
	return handlePQError(err)
}

func (s *PostgresStorage) RemoveMember(ctx context.Context, userID, roomID string) error {
	return s.exec(ctx, "DELETE FROM room_members WHERE user_id = $1 AND room_id = $2", userID, roomID)
}

func (s *PostgresStorage) RoomMembers(ctx context.Context, roomID string) ([]string, error) {
	return s.queryIDs(ctx, "SELECT user_id FROM room_members WHERE room_id = $1 ORDER BY user_id", roomID)
}

func (s *PostgresStorage) UserRooms(ctx context.Context, userID string) ([]string, error) {
	return s.queryIDs(ctx, "SELECT room_id FROM room_members WHERE user_id = $1 ORDER BY room_id", userID)
}

func (s *PostgresStorage) queryIDs(ctx context.Context, query, arg string) ([]string, error) {
	ids := []string{}

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err = handlePQError(err); err != nil {
		if noMatch(err) {
			return ids, nil
		}
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Messages

func (s *PostgresStorage) SaveMessage(ctx context.Context, msg *Message) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (room_id, sender_id, content, message_type, reply_to_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at, edited`,
		msg.RoomID, msg.SenderID, msg.Content, msg.MessageType, msg.ReplyToID).Scan(
		&msg.ID, &msg.SentAt, &msg.Edited)
	return handlePQError(err)
}

func (s *PostgresStorage) RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]*Message, error) {
	messages := []*Message{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_id, sender_id, content, message_type, reply_to_id, sent_at, edited
		FROM messages WHERE room_id = $1
		ORDER BY sent_at DESC, seq DESC
		LIMIT $2 OFFSET $3`, roomID, limit, offset)
	if err = handlePQError(err); err != nil {
		if noMatch(err) {
			return messages, nil
		}
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		msg := &Message{}
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.SenderID, &msg.Content,
			&msg.MessageType, &msg.ReplyToID, &msg.SentAt, &msg.Edited); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *PostgresStorage) EditMessage(ctx context.Context, id, content string) error {
	return s.exec(ctx, "UPDATE messages SET content = $1, edited = TRUE WHERE id = $2", content, id)
}

func (s *PostgresStorage) DeleteMessage(ctx context.Context, id string) error {
	return s.exec(ctx, "DELETE FROM messages WHERE id = $1", id)
}

// Presence

func (s *PostgresStorage) UpsertStatus(ctx context.Context, userID, status string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_status (user_id, status, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
		userID, status)
	return handlePQError(err)
}

func (s *PostgresStorage) StatusByUserID(ctx context.Context, userID string) (*Status, error) {
	status := &Status{}
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, status, updated_at
		FROM user_status WHERE user_id = $1`, userID).Scan(
		&status.UserID, &status.Status, &status.UpdatedAt)
	if err = handlePQError(err); err != nil {
		if noMatch(err) {
			return nil, nil
		}
		return nil, err
	}
	return status, nil
}
