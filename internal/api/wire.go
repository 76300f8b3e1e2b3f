package api

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"webtalk/config"
)

func ProvideServer(cfg *config.Config, handlers Handlers, logger *zap.Logger) *Server {
	return NewServer(cfg.HTTP, handlers, logger)
}

var Set = wire.NewSet(wire.Struct(new(Handlers), "*"), ProvideServer)
