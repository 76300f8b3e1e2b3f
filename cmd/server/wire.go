//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"webtalk/config"
	"webtalk/internal/api"
	"webtalk/internal/chat"
	"webtalk/internal/messaging"
	"webtalk/internal/policy"
	"webtalk/internal/presence"
	"webtalk/internal/user"
)

var AppSet = wire.NewSet(
	provideLogger,
	provideGateway,
	policy.Set,
	user.Set,
	chat.Set,
	messaging.Set,
	presence.Set,
	api.Set,
)

func InitializeServer(ctx context.Context, cfg *config.Config) (*api.Server, func(), error) {
	wire.Build(AppSet)
	return nil, nil, nil
}
