package user

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

func ProvideUseCase(gateway storage.Gateway, authorizer policy.Authorizer, logger *zap.Logger) *UseCase {
	return NewUseCase(gateway, authorizer, logger)
}

func ProvideJSONHandler(userUseCase *UseCase) *JSONHandler {
	return NewJSONHandler(userUseCase)
}

var Set = wire.NewSet(ProvideUseCase, ProvideJSONHandler)
