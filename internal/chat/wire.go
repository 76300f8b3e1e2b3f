package chat

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

func ProvideUseCase(gateway storage.Gateway, authorizer policy.Authorizer, logger *zap.Logger) *UseCase {
	return NewUseCase(gateway, authorizer, logger)
}

func ProvideJSONHandler(chatUseCase *UseCase) *JSONHandler {
	return NewJSONHandler(chatUseCase)
}

var Set = wire.NewSet(ProvideUseCase, ProvideJSONHandler)
