package user

import "encoding/json"

type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

type CreateUserInput struct {
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// Patch lists the fields to change. Absent fields keep their value; an explicit
// null clears email or avatar_url.
type Patch struct {
	Username  *string  `json:"username"`
	FullName  *string  `json:"full_name"`
	Email     Nullable `json:"email"`
	AvatarURL Nullable `json:"avatar_url"`
}

// Nullable is an optional column in a patch. Set reports whether the key was
// present at all; a nil Value with Set means null.
type Nullable struct {
	Set   bool
	Value *string
}

func Null() Nullable { return Nullable{Set: true} }

func NullableOf(s string) Nullable { return Nullable{Set: true, Value: &s} }

func (n *Nullable) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}
