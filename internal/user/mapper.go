package user

import (
	"database/sql"

	"webtalk/internal/storage"
)

func ConvertDBUserToUser(dbUser *storage.User) *User {
	return &User{
		ID:        dbUser.ID,
		Username:  dbUser.Username,
		FullName:  dbUser.FullName,
		Email:     fromNullString(dbUser.Email),
		AvatarURL: fromNullString(dbUser.AvatarURL),
	}
}

func ConvertPatchToDBPatch(p Patch) storage.UserPatch {
	return storage.UserPatch{
		Username:  p.Username,
		FullName:  p.FullName,
		Email:     nullablePatch(p.Email),
		AvatarURL: nullablePatch(p.AvatarURL),
	}
}

func nullablePatch(n Nullable) *sql.NullString {
	if !n.Set {
		return nil
	}
	ns := toNullString(n.Value)
	return &ns
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
