package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. level is a zap level name ("debug", "info", ...).
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// Execute runs a service operation, logs its execution time and outcome,
// and guarantees the returned error is nil or a *Failure. A panic inside
// operation is recovered and reported as an unexpected failure.
func Execute(ctx context.Context, logger *zap.Logger, name string, operation func(ctx context.Context) error) (err error) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			err = Unexpected(fmt.Errorf("panic: %v", p))
		}
		err = asFailureOrNil(err)

		elapsed := time.Since(start)
		if err == nil {
			logger.Debug("operation completed", zap.String("operation", name), zap.Duration("elapsed", elapsed))
			return
		}

		f := err.(*Failure)
		fields := []zap.Field{
			zap.String("operation", name),
			zap.Duration("elapsed", elapsed),
			zap.String("kind", string(f.Kind)),
			zap.String("message", f.Message),
		}
		switch f.Kind {
		case KindStorage, KindUnexpected:
			logger.Error("operation failed", append(fields, zap.Error(f.Err))...)
		default:
			logger.Info("operation rejected", fields...)
		}
	}()

	return operation(ctx)
}

// ExecuteValue is Execute for operations that produce a value.
func ExecuteValue[T any](ctx context.Context, logger *zap.Logger, name string, operation func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Execute(ctx, logger, name, func(ctx context.Context) error {
		var opErr error
		result, opErr = operation(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func asFailureOrNil(err error) error {
	if f := AsFailure(err); f != nil {
		return f
	}
	return nil
}
