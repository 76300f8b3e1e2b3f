// Package policy is the authorization hook consulted before mutating
// operations. The default policy allows everything.
package policy

import (
	"context"

	"github.com/google/wire"
)

type Action string

const (
	UpdateUser    Action = "user.update"
	DeleteUser    Action = "user.delete"
	DeleteRoom    Action = "room.delete"
	AddMember     Action = "room.add_member"
	RemoveMember  Action = "room.remove_member"
	SendMessage   Action = "message.send"
	EditMessage   Action = "message.edit"
	DeleteMessage Action = "message.delete"
	UpdateStatus  Action = "status.update"
)

// Authorizer decides whether the actor in ctx may perform action on the
// resource identified by resourceID. A non-nil error denies the request.
type Authorizer interface {
	Authorize(ctx context.Context, action Action, resourceID string) error
}

type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Action, string) error { return nil }

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, action Action, resourceID string) error

func (f AuthorizerFunc) Authorize(ctx context.Context, action Action, resourceID string) error {
	return f(ctx, action, resourceID)
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the id of the acting user.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// Actor returns the acting user id stored in ctx, or "" for anonymous callers.
func Actor(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}

func ProvideAuthorizer() Authorizer {
	return AllowAll{}
}

var Set = wire.NewSet(ProvideAuthorizer)
