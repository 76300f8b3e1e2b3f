package messaging

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

func ProvideService(gateway storage.Gateway, authorizer policy.Authorizer, logger *zap.Logger) *Service {
	return NewService(gateway, authorizer, logger)
}

func ProvideJSONHandler(service *Service) *JSONHandler {
	return NewJSONHandler(service)
}

var Set = wire.NewSet(ProvideService, ProvideJSONHandler)
